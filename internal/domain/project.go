package domain

import "time"

// Project groups issues and carries the member roster.
type Project struct {
	ID          string
	Name        string
	Description string
	Owner       UserRef
	Members     []UserRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasMember reports whether the user id is on the roster.
func (p Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m.Is(userID) {
			return true
		}
	}
	return false
}

// Developers returns roster members with the developer role, in roster order.
func (p Project) Developers() []UserRef {
	var devs []UserRef
	for _, m := range p.Members {
		if m.Role == RoleDeveloper {
			devs = append(devs, m)
		}
	}
	return devs
}

// Ref returns a populated reference to the project.
func (p Project) Ref() ProjectRef {
	return ProjectRef{ID: p.ID, Name: p.Name, OwnerID: p.Owner.ID}
}
