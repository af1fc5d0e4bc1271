package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertTypeValidate(t *testing.T) {
	tests := []struct {
		alertType AlertType
		valid     bool
	}{
		{alertType: AlertTypeOverdue1, valid: true},
		{alertType: "", valid: false},
		{alertType: "overdue_2", valid: false},
		{alertType: "overdue_1 ", valid: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.alertType), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.alertType.Valid())

			err := tt.alertType.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAlertType)
			}
		})
	}
}

func TestSentAlertBeforeSaveValidatesAlertType(t *testing.T) {
	alert := &UserInfoRequestSentAlert{UserID: 42, InfoRequestID: 7, AlertType: "bogus"}
	assert.ErrorIs(t, alert.BeforeSave(nil), ErrInvalidAlertType)

	alert.AlertType = AlertTypeOverdue1
	assert.NoError(t, alert.BeforeSave(nil))
}
