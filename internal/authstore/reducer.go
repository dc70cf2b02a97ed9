// Package authstore keeps the client-side login state and mirrors it into
// persistent storage.
package authstore

// User is the signed-in account as returned by the login endpoint.
type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

// State is the in-memory auth state. IsHydrated distinguishes "not checked
// yet" from "checked and logged out".
type State struct {
	IsLoggedIn bool
	User       *User
	Role       string
	Token      string
	IsHydrated bool
}

type ActionKind int

const (
	SetLoggedIn ActionKind = iota + 1
	SetLoggedOut
	Hydrate
)

// Action is a state transition. For Hydrate the fields carry whatever was
// read back from storage.
type Action struct {
	Kind       ActionKind
	IsLoggedIn bool
	User       *User
	Role       string
	Token      string
}

func LoggedIn(user *User, role, token string) Action {
	return Action{Kind: SetLoggedIn, IsLoggedIn: true, User: user, Role: role, Token: token}
}

func LoggedOut() Action {
	return Action{Kind: SetLoggedOut}
}

// Reduce applies a to s and returns the new state.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case SetLoggedIn:
		s.IsLoggedIn = true
		s.User = a.User
		s.Role = a.Role
		s.Token = a.Token
	case SetLoggedOut:
		s.IsLoggedIn = false
		s.User = nil
		s.Role = ""
		s.Token = ""
	case Hydrate:
		s.IsLoggedIn = a.IsLoggedIn && a.User != nil
		if s.IsLoggedIn {
			s.User = a.User
			s.Role = a.Role
			s.Token = a.Token
		} else {
			s.User = nil
			s.Role = ""
			s.Token = ""
		}
		s.IsHydrated = true
	}
	return s
}
