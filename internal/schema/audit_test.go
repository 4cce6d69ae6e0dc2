package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAuditMeta(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		meta    string
		wantErr bool
	}{
		{"assign reviewer valid", "assign_reviewer", `{"reviewerId":"0c2d4e6f-1a2b-4c3d-8e9f-0a1b2c3d4e5f"}`, false},
		{"assign reviewer not a uuid", "assign_reviewer", `{"reviewerId":"bob"}`, true},
		{"assign reviewer missing field", "assign_reviewer", `{}`, true},
		{"approve with note", "approve_review", `{"note":"looks good"}`, false},
		{"approve without note", "approve_review", `{}`, false},
		{"approve extra field", "approve_review", `{"note":"ok","score":5}`, true},
		{"reject with note", "reject_review", `{"note":"needs sources"}`, false},
		{"add member valid role", "add_member", `{"role":"reviewer"}`, false},
		{"add member unknown role", "add_member", `{"role":"superuser"}`, true},
		{"change role valid", "change_role", `{"role":"admin"}`, false},
		{"unregistered action passes anything", "remove_member", `{"whatever":true}`, false},
		{"registered action rejects garbage", "assign_reviewer", `{not json`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAuditMeta(tt.action, []byte(tt.meta))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
