package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrite_PlainRows(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf,
		[]string{"employee", "month", "total_pay"},
		[][]string{
			{"Dina", "2026-02", "462500"},
			{"Bagus", "2026-02", "400000"},
		},
	)
	assert.NoError(t, err)
	assert.Equal(t, "employee,month,total_pay\nDina,2026-02,462500\nBagus,2026-02,400000\n", buf.String())
}

func TestWrite_QuotesCommasAndQuotes(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf,
		[]string{"name", "note"},
		[][]string{
			{`Dina, S.`, `said "done"`},
		},
	)
	assert.NoError(t, err)
	assert.Equal(t, "name,note\n\"Dina, S.\",\"said \"\"done\"\"\"\n", buf.String())
}

func TestWrite_HeadersOnly(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []string{"a", "b"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "a,b\n", buf.String())
}
