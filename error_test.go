package lunrstore_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/lunrstore"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := lunrstore.Errorf(lunrstore.EMALFORMED, "record %d: missing field %q", 3, "url")

	assert.Equal(t, lunrstore.EMALFORMED, lunrstore.ErrorCode(err))
	assert.Equal(t, "record 3: missing field \"url\"", lunrstore.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading store: %w", lunrstore.Errorf(lunrstore.ENOTFOUND, "store not found"))

	assert.Equal(t, lunrstore.ENOTFOUND, lunrstore.ErrorCode(err))
	assert.Equal(t, "store not found", lunrstore.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, lunrstore.EINTERNAL, lunrstore.ErrorCode(err))
	assert.Equal(t, "Internal error.", lunrstore.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lunrstore.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lunrstore.ErrorMessage(nil))
}
