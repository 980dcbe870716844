package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jozveh_bot/internal/models"
	"jozveh_bot/internal/store"
)

func TestParseOrderIndex(t *testing.T) {
	assert.Equal(t, 0, parseOrderIndex("سفارش: 1 - 10000 تومان", 3))
	assert.Equal(t, 2, parseOrderIndex("سفارش: 3 - 4500 تومان", 3))
	// malformed or out-of-range labels fall back to the first order
	assert.Equal(t, 0, parseOrderIndex("سفارش: نه - تومان", 3))
	assert.Equal(t, 0, parseOrderIndex("سفارش: 9 - 100 تومان", 3))
}

func TestParseRemovalPosition(t *testing.T) {
	pos, err := parseRemovalPosition("حذف: 2. جزوه ریاضی - رنگی")
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	_, err = parseRemovalPosition("حذف:")
	assert.Error(t, err)
}

func TestTypeFromLabel(t *testing.T) {
	assert.Equal(t, models.TypeColor, typeFromLabel("🎨 رنگی"))
	assert.Equal(t, models.TypeBW, typeFromLabel("⬛ سیاه سفید"))
}

func TestIdentityHelpers(t *testing.T) {
	u := &models.User{FirstName: "علی", LastName: "رضایی", IsDorm: true, DormName: "خوابگاه دانش"}
	assert.Equal(t, "علی رضایی", identityName(u))
	assert.Equal(t, "خوابگاه دانش", identityDorm(u))

	blank := &models.User{}
	assert.Equal(t, "نامشخص", identityName(blank))
	assert.Equal(t, "تهرانی", identityDorm(blank))
}

func TestSummaryLinesFormat(t *testing.T) {
	lines := summaryLines([]store.TitleCounts{
		{Title: "جزوه ریاضی", Color: 2, BW: 1},
		{Title: "جزوه فیزیک", Color: 0, BW: 4},
	})
	require.Len(t, lines, 2)
	assert.Equal(t, "جزوه ریاضی : رنگی 2 - سیاه و سفید 1", lines[0])
	assert.Equal(t, "جزوه فیزیک : رنگی 0 - سیاه و سفید 4", lines[1])
}

func TestSessionReuse(t *testing.T) {
	s := newSessions()
	a := s.get(1)
	a.state = stateBuyEnterQty
	assert.Same(t, a, s.get(1))
	assert.NotSame(t, a, s.get(2))
}

func TestClearAdminContextKeepsUserFlow(t *testing.T) {
	sess := &session{
		state:           stateMain,
		payOrderID:      "ord-1",
		regNames:        map[string]int64{"x": 1},
		buyers:          map[string]int64{"y": 2},
		inspectPID:      "3",
		selectedRegUser: 1,
	}
	sess.clearAdminContext()
	assert.Equal(t, "ord-1", sess.payOrderID)
	assert.Nil(t, sess.regNames)
	assert.Nil(t, sess.buyers)
	assert.Empty(t, sess.inspectPID)
	assert.Zero(t, sess.selectedRegUser)
}
