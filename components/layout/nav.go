// Package layout holds the page shell, header and toast components shared
// by the views.
package layout

import "github.com/johndosdos/escola/internal/model"

// NavItem is a header link.
type NavItem struct {
	Title string
	Path  string
}

// NavItems returns the header links for a user type ("parent" or "school").
func NavItems(userType string) []NavItem {
	if userType == "school" {
		return []NavItem{
			{Title: "Dashboard", Path: "/school/dashboard"},
			{Title: "Mensagens", Path: "/school/messages"},
		}
	}
	return []NavItem{
		{Title: "Dashboard", Path: "/parent/dashboard"},
		{Title: "Mensagens", Path: "/parent/messages"},
		{Title: "Notificações", Path: "/parent/notifications"},
	}
}

func severity(n model.Notice) model.Severity {
	if n.Severity == "" {
		return model.SeverityDefault
	}
	return n.Severity
}
