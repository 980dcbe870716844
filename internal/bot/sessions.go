package bot

import (
	"sync"

	"jozveh_bot/internal/models"
	"jozveh_bot/internal/store"
)

// session is the per-conversation transient state. It lives in memory only
// and is lost on restart; abandoned mid-flow state stays around until
// overwritten.
type session struct {
	state state

	// buying flow
	selectedProduct string
	buyType         string
	unitPrice       int

	// payment flow
	payOrderID    string
	finalizedList []models.Order

	// user misc
	chatWithAdmin    bool
	viewingFinalized bool
	oldIdentity      *models.User

	// admin context
	replyTo         int64
	awaitingBackup  bool
	regNames        map[string]int64
	buyers          map[string]int64
	finalizedAgg    map[string]bool
	purchasedAgg    map[string]bool
	inspectPID      string
	inspectSource   store.Source
	selectedRegUser int64
	selectedBuyer   int64
	newProductID    string
}

func (s *session) reset() { *s = session{} }

// clearAdminContext drops the admin list/drilldown selections without
// touching the conversation state or any user-flow fields.
func (s *session) clearAdminContext() {
	s.replyTo = 0
	s.regNames = nil
	s.buyers = nil
	s.finalizedAgg = nil
	s.purchasedAgg = nil
	s.inspectPID = ""
	s.inspectSource = ""
	s.selectedRegUser = 0
	s.selectedBuyer = 0
}

type sessions struct {
	mu sync.Mutex
	m  map[int64]*session
}

func newSessions() *sessions {
	return &sessions{m: map[int64]*session{}}
}

func (s *sessions) get(uid int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[uid]
	if !ok {
		sess = &session{}
		s.m[uid] = sess
	}
	return sess
}
