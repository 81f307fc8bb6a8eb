package main

import (
	"testing"

	"github.com/factuurdesk/factuurdesk/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestAppOptionsResolve(t *testing.T) {
	require.NoError(t, fx.ValidateApp(append(appOptions(), fx.NopLogger)...))
}

func TestValidatorModuleInitializesValidator(t *testing.T) {
	app := fx.New(validatorModule(), fx.NopLogger)
	require.NoError(t, app.Err())
	require.NotNil(t, validator.GetValidator())

	type company struct {
		Email string `validate:"required,email"`
	}
	assert.NoError(t, validator.ValidateRequest(company{Email: "info@factuurdesk.nl"}))
	assert.Error(t, validator.ValidateRequest(company{Email: "geen-email"}))
}
