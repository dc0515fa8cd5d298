// Package role produces employee roles from a discriminator string.
//
//	r, err := role.Create("Developer")
//	if errors.Is(err, role.ErrUnknownVariant) { ... }
//	fmt.Println(r.Label()) // "Developer"
//
// Callers never name the concrete role types; the Registry picks one from
// the discriminator. New roles are added with Registry.Register and never
// require changes to existing ones.
package role

// Role is anything that can report its role label.
type Role interface {
	Label() string
}

// Constructor builds a fresh Role.
type Constructor func() Role

// Manager runs a team.
type Manager struct{}

func (Manager) Label() string { return "Manager" }

// Developer writes software.
type Developer struct{}

func (Developer) Label() string { return "Developer" }

// Intern is on a fixed-term placement.
type Intern struct{}

func (Intern) Label() string { return "Intern" }

// Builtin discriminators.
const (
	KindManager   = "manager"
	KindDeveloper = "developer"
	KindIntern    = "intern"
)

func builtins() map[string]Constructor {
	return map[string]Constructor{
		KindManager:   func() Role { return Manager{} },
		KindDeveloper: func() Role { return Developer{} },
		KindIntern:    func() Role { return Intern{} },
	}
}
