package domain

import "encoding/json"

// ProjectRef points at a project. Depending on which API call produced the
// record it may arrive populated (id plus name) or as a bare identifier;
// comparisons always go through the identifier.
type ProjectRef struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	OwnerID string `json:"owner,omitempty"`
}

// Is reports whether the reference points at the given project id.
func (r ProjectRef) Is(id string) bool {
	return r.ID != "" && r.ID == id
}

// IsZero reports whether the reference is unset.
func (r ProjectRef) IsZero() bool {
	return r.ID == ""
}

// UnmarshalJSON accepts either a bare id string or a populated object.
func (r *ProjectRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = ProjectRef{ID: id}
		return nil
	}
	type plain ProjectRef
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = ProjectRef(obj)
	return nil
}

// UserRef points at a user, bare or populated.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role Role   `json:"role,omitempty"`
}

// Is reports whether the reference points at the given user id.
func (r UserRef) Is(id string) bool {
	return r.ID != "" && r.ID == id
}

// UnmarshalJSON accepts either a bare id string or a populated object.
func (r *UserRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = UserRef{ID: id}
		return nil
	}
	type plain UserRef
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = UserRef(obj)
	return nil
}
