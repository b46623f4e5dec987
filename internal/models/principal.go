package models

// Principal is the authenticated caller. Accounts are managed outside this service.
type Principal struct {
	ID       string `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Username string `json:"username" db:"username"`
	IsStaff  bool   `json:"is_staff" db:"is_staff"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

func (p *Principal) Ref() *PrincipalRef {
	if p == nil {
		return nil
	}
	return &PrincipalRef{ID: p.ID, Username: p.Username, Email: p.Email}
}
