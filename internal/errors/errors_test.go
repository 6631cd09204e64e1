package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"py50/domain/core"
)

func TestWrap_KeepsCode(t *testing.T) {
	base := ConfigInvalid("PY50_DPI must be positive")
	err := Wrap(base, "load configuration")
	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.Equal(t, "load configuration: PY50_DPI must be positive", err.Error())
	assert.True(t, stderrors.Is(err, base))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{core.NewColumnNotFoundError("dv", "score"), CodeNotFound},
		{core.NewUnsupportedTestError("anova", []string{"tukey"}), CodeInvalidInput},
		{core.NewMissingTestError([]string{"tukey"}), CodeInvalidInput},
		{fmt.Errorf("tukey: %w", core.NewInvalidOptionError("bogus", "unknown")), CodeInvalidInput},
		{core.NewInsufficientDataError("anova", "one group"), CodeComputation},
		{core.NewAnnotationMismatchError(3, 2), CodeValidationError},
		{fmt.Errorf("load: %w", core.ErrDuplicateColumn), CodeValidationError},
		{IOError("read data.csv", stderrors.New("denied")), CodeIOError},
		{stderrors.New("boom"), CodeInternalError},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, Classify(c.err), c.err.Error())
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeValidationError, fmt.Errorf("wrapped: %w", NotFound("dataset")))
	assert.Equal(t, CodeValidationError, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
