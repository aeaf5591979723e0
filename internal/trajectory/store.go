package trajectory

import "sort"

// Store is a read-only lookup of trajectories keyed by species and technology.
// It is never mutated after construction and is safe for concurrent use.
type Store struct {
	species map[string]map[string]Trajectory
}

// NewStore copies ds into a new store
func NewStore(ds Dataset) *Store {
	s := &Store{species: make(map[string]map[string]Trajectory, len(ds))}
	for name, data := range ds {
		techs := make(map[string]Trajectory, len(data.Trajectories))
		for tech, traj := range data.Trajectories {
			techs[tech] = traj.clone()
		}
		s.species[name] = techs
	}
	return s
}

// Lookup returns the trajectory for a species and technology. Failures are
// *LookupError values wrapping ErrSpeciesNotFound or ErrTechnologyNotFound.
func (s *Store) Lookup(species, technology string) (Trajectory, error) {
	techs, ok := s.species[species]
	if !ok {
		return Trajectory{}, &LookupError{Species: species, Technology: technology, Err: ErrSpeciesNotFound}
	}
	traj, ok := techs[technology]
	if !ok {
		return Trajectory{}, &LookupError{Species: species, Technology: technology, Err: ErrTechnologyNotFound}
	}
	return traj.clone(), nil
}

// Baseline returns chickens/factoryFarming, or DefaultBaseline when the
// dataset does not carry it.
func (s *Store) Baseline() Trajectory {
	if traj, err := s.Lookup(DefaultSpecies, DefaultTechnology); err == nil {
		return traj
	}
	return DefaultBaseline()
}

// Index lists technologies per species, both sorted by name
func (s *Store) Index() map[string][]string {
	idx := make(map[string][]string, len(s.species))
	for name, techs := range s.species {
		list := make([]string, 0, len(techs))
		for tech := range techs {
			list = append(list, tech)
		}
		sort.Strings(list)
		idx[name] = list
	}
	return idx
}

// Species returns the sorted species names
func (s *Store) Species() []string {
	names := make([]string, 0, len(s.species))
	for name := range s.species {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of trajectories held
func (s *Store) Count() int {
	n := 0
	for _, techs := range s.species {
		n += len(techs)
	}
	return n
}
