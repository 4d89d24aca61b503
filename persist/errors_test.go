package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"permission", fs.ErrPermission, KindPermissionDenied},
		{"wrapped permission", fmt.Errorf("open /etc/x: %w", fs.ErrPermission), KindPermissionDenied},
		{"invalid", fs.ErrInvalid, KindInvalidPath},
		{"not exist", fs.ErrNotExist, KindIOFailure},
		{"other", errors.New("disk full"), KindIOFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			assert.Equal(t, tc.want, got.Kind)
			assert.ErrorIs(t, got, tc.err)
		})
	}
}

func TestErrorMessagePrefix(t *testing.T) {
	err := classify(errors.New("device not ready"))
	assert.Equal(t, "failed to write file: device not ready", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	inner := fs.ErrPermission
	err := classify(inner)

	var perr *Error
	assert.ErrorAs(t, error(err), &perr)
	assert.ErrorIs(t, err, inner)
}
