package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// AssertFileContent checks that path exists on fs with exactly want as content
func AssertFileContent(t *testing.T, fs types.FS, path, want string, msgAndArgs ...interface{}) {
	t.Helper()
	data, err := fs.ReadFile(path)
	if !assert.NoError(t, err, msgAndArgs...) {
		return
	}
	assert.Equal(t, want, string(data), msgAndArgs...)
}

// AssertNoFile checks that path does not exist on fs
func AssertNoFile(t *testing.T, fs types.FS, path string, msgAndArgs ...interface{}) {
	t.Helper()
	assert.False(t, fs.Exists(path), msgAndArgs...)
}

// AssertErrorCode checks that err is a vuegen error carrying code
func AssertErrorCode(t *testing.T, err error, code errors.ErrorCode, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Error(t, err, msgAndArgs...) {
		return
	}
	assert.Equal(t, code, errors.GetErrorCode(err), msgAndArgs...)
}
