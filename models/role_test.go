package models

import "testing"

func TestRoleHasCapability(t *testing.T) {
	role := Role{
		Name: "provider",
		Permissions: []Permission{
			{Name: CapBookSys, Description: "Manage schedules and statuses"},
		},
	}

	if !role.HasCapability(CapBookSys) {
		t.Error("provider role should carry book-sys")
	}
	if role.HasCapability(CapCanBook) {
		t.Error("provider role should not carry can-book")
	}
	if role.HasCapability(CapManageBookings) {
		t.Error("provider role should not carry manage bookings")
	}

	empty := Role{Name: "guest"}
	if empty.HasCapability(CapCanBook) {
		t.Error("role without grants should have no capabilities")
	}
}
