package models

import "testing"

func TestHasPermission(t *testing.T) {
	auth := &AuthenticatedUser{
		User: User{Username: "operator"},
		Permissions: []Permission{
			{Name: "items.import"},
			{Name: "boxes.seal"},
		},
	}

	if !auth.HasPermission("boxes.seal") {
		t.Error("expected granted permission to match")
	}
	if auth.HasPermission("exports.create") {
		t.Error("expected missing permission to be denied")
	}
}

func TestHasPermissionSuperuser(t *testing.T) {
	auth := &AuthenticatedUser{User: User{Username: "admin", Superuser: true}}

	if !auth.HasPermission("anything.at.all") {
		t.Error("superuser must pass every permission check")
	}
}

func TestHasRole(t *testing.T) {
	auth := &AuthenticatedUser{
		Roles: []Role{{Name: "line_operator"}},
	}

	if !auth.HasRole("line_operator") {
		t.Error("expected assigned role to match")
	}
	if auth.HasRole("supervisor") {
		t.Error("expected missing role to be denied")
	}
}
