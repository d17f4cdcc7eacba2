package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFmtDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 5, 2024", FmtDate(d, "en"))
	assert.Equal(t, "5 Maret 2024", FmtDate(d, "id-ID"))
	assert.Equal(t, "March 5, 2024", FmtDate(d, ""))
	assert.Equal(t, "", FmtDate(time.Time{}, "en"))
	assert.Equal(t, "Maret 2024", FmtMonth(d, "id"))
	assert.Equal(t, "2024-03-05T09:00:00Z", ISODate(d))
}

func TestFmtNumber(t *testing.T) {
	assert.Equal(t, "1,200", FmtNumber(1200, "en"))
	assert.Equal(t, "1.200", FmtNumber(1200, "id"))
	assert.Equal(t, "2.5", FmtNumber(2.5, "en"))
	assert.Equal(t, "2,5", FmtNumber(2.5, "id"))
	assert.Equal(t, "450", FmtNumber(450, "xx-invalid-"))
}
