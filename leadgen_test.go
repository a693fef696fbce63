package leadgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mirnes420/leadgen"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := leadgen.Errorf(leadgen.ENOTFOUND, "lead %q not found", "test")

	assert.Equal(t, leadgen.ENOTFOUND, leadgen.ErrorCode(err))
	assert.Equal(t, "lead \"test\" not found", leadgen.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, leadgen.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, leadgen.ErrorMessage(nil))
}

func TestLead_Resolved(t *testing.T) {
	t.Parallel()

	assert.True(t, (&leadgen.Lead{Email: "info@acme.de"}).Resolved())
	assert.False(t, (&leadgen.Lead{Email: leadgen.Unresolved}).Resolved())
	assert.False(t, (&leadgen.Lead{}).Resolved())
}

func TestGlobalLead_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		lead := &leadgen.GlobalLead{Name: "Acme Plumbing", Email: "info@acme.de"}
		assert.NoError(t, lead.Validate())
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()
		lead := &leadgen.GlobalLead{Email: "info@acme.de"}
		err := lead.Validate()
		assert.Equal(t, leadgen.EINVALID, leadgen.ErrorCode(err))
	})

	t.Run("rejects an unresolved email", func(t *testing.T) {
		t.Parallel()
		lead := &leadgen.GlobalLead{Name: "Acme Plumbing", Email: leadgen.Unresolved}
		err := lead.Validate()
		assert.Equal(t, leadgen.EINVALID, leadgen.ErrorCode(err))
	})
}
