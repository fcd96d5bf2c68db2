package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDays_SingleDay(t *testing.T) {
	d := date(2025, time.June, 2)
	assert.Equal(t, 1.0, Days(d, d, nil))
}

func TestDays_HalfDay(t *testing.T) {
	d := date(2025, time.June, 2)
	half := HalfFirst
	assert.Equal(t, 0.5, Days(d, d, &half))
}

func TestDays_FiveDaySpan(t *testing.T) {
	start := date(2025, time.June, 2)
	end := date(2025, time.June, 6) // end - start == 4 days
	assert.Equal(t, 5.0, Days(start, end, nil))
}

func TestLedger_Balance(t *testing.T) {
	l := Ledger{PL: 12, SL: 6, CL: 3.5}
	assert.Equal(t, 12.0, l.Balance(TypePaid))
	assert.Equal(t, 6.0, l.Balance(TypeSick))
	assert.Equal(t, 3.5, l.Balance(TypeCasual))
	assert.Equal(t, 0.0, l.Balance(Type("XX")))
}

func TestLedger_InProbation(t *testing.T) {
	l := Ledger{ProbationEnd: date(2025, time.July, 1)}
	assert.True(t, l.InProbation(date(2025, time.June, 30)))
	assert.True(t, l.InProbation(date(2025, time.July, 1)))
	assert.False(t, l.InProbation(date(2025, time.July, 2)))
}

func TestRequest_Pending(t *testing.T) {
	r := Request{}
	assert.True(t, r.Pending())

	approved := ActionApproved
	r.Action = &approved
	assert.False(t, r.Pending())
	assert.True(t, r.Approved())

	expired := Request{IsExpired: true}
	assert.False(t, expired.Pending())
}
