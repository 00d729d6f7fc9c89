package fsops

import "github.com/petasbytes/recordshim/internal/safety"

// Store applies a path policy in front of Save and Load.
type Store struct {
	policy safety.Policy
}

// NewStore returns a Store governed by policy. The zero Policy passes paths
// through verbatim.
func NewStore(policy safety.Policy) *Store {
	return &Store{policy: policy}
}

func (s *Store) Save(path, data string) error {
	resolved, err := s.policy.ResolveWrite(path)
	if err != nil {
		return wrap("save", path, err)
	}
	return Save(resolved, data)
}

func (s *Store) Load(path string) (string, error) {
	resolved, err := s.policy.ResolveRead(path)
	if err != nil {
		return "", wrap("load", path, err)
	}
	return Load(resolved)
}
