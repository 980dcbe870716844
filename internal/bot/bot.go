package bot

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"jozveh_bot/internal/config"
	"jozveh_bot/internal/store"
)

// Conversation states. MAIN is both the initial and the terminal state of
// every flow; there is no separate error state, failures re-prompt in place.
type state int

const (
	stateMain state = iota
	stateRegisterName
	stateRegisterDorm
	stateRegisterOtherDorm
	stateBuySelectProduct
	stateBuySelectType
	stateBuyEnterQty
	stateAwaitingReceipt
	stateAdminAddName
	stateAdminAddChoose
	stateAdminAddColorPrice
	stateAdminAddBWPrice
	stateAdminList
	stateAdminDeleteSelect
	stateAdminBlockID
	stateAdminUnblockID
	stateManageAdmins
	stateAddAdmin
	stateRemoveAdmin
)

const btnBack = "🔙 بازگشت"

type handlerFunc func(c tele.Context, sess *session, text string) error

// Bot routes Telegram updates through the conversation state machine.
type Bot struct {
	tele     *tele.Bot
	store    *store.Store
	cfg      *config.Config
	logger   *zap.Logger
	sessions *sessions
	handlers map[state]handlerFunc
}

func New(tb *tele.Bot, st *store.Store, cfg *config.Config, logger *zap.Logger) *Bot {
	b := &Bot{
		tele:     tb,
		store:    st,
		cfg:      cfg,
		logger:   logger,
		sessions: newSessions(),
	}
	b.handlers = map[state]handlerFunc{
		stateMain:               b.handleMain,
		stateRegisterName:       b.handleRegisterName,
		stateRegisterDorm:       b.handleRegisterDorm,
		stateRegisterOtherDorm:  b.handleRegisterOtherDorm,
		stateBuySelectProduct:   b.handleBuySelectProduct,
		stateBuySelectType:      b.handleBuySelectType,
		stateBuyEnterQty:        b.handleBuyEnterQty,
		stateAwaitingReceipt:    b.handleAwaitingReceiptText,
		stateAdminAddName:       b.handleAdminAddName,
		stateAdminAddChoose:     b.handleAdminAddChoose,
		stateAdminAddColorPrice: b.handleAdminAddColorPrice,
		stateAdminAddBWPrice:    b.handleAdminAddBWPrice,
		stateAdminList:          b.handleAdminList,
		stateAdminDeleteSelect:  b.handleAdminDeleteSelect,
		stateAdminBlockID:       b.handleAdminBlockID,
		stateAdminUnblockID:     b.handleAdminUnblockID,
		stateManageAdmins:       b.handleManageAdmins,
		stateAddAdmin:           b.handleAddAdmin,
		stateRemoveAdmin:        b.handleRemoveAdmin,
	}
	return b
}

// Register wires every handler into the telebot dispatcher.
func (b *Bot) Register() {
	b.tele.Handle("/start", b.onStart)
	b.tele.Handle(tele.OnText, b.onText)
	b.tele.Handle(tele.OnPhoto, b.onPhoto)
	b.tele.Handle(tele.OnDocument, b.onDocument)

	b.tele.Handle(&tele.Btn{Unique: "pay_approve"}, b.onPayApprove)
	b.tele.Handle(&tele.Btn{Unique: "pay_reject"}, b.onPayReject)
	b.tele.Handle(&tele.Btn{Unique: "reply_user"}, b.onReplyUser)
	b.tele.Handle(&tele.Btn{Unique: "del_list"}, b.onConfirmDeleteList)
	b.tele.Handle(&tele.Btn{Unique: "del_buyer"}, b.onDeleteBuyer)
	b.tele.Handle(&tele.Btn{Unique: "del_reg_user"}, b.onDeleteRegUser)
}

// isAdmin covers the primary admin from configuration plus the persisted
// roster. Checked once at dispatch, never re-implemented per handler.
func (b *Bot) isAdmin(uid int64) bool {
	return uid == b.cfg.AdminID || b.store.IsRosterAdmin(uid)
}

// adminIDs is the broadcast list: primary admin first, then the roster.
func (b *Bot) adminIDs() []int64 {
	return append([]int64{b.cfg.AdminID}, b.store.Admins()...)
}

func (b *Bot) onStart(c tele.Context) error {
	uid := c.Sender().ID
	if b.store.IsBlocked(uid) {
		return c.Send("🚫 شما توسط ادمین مسدود شده‌اید.")
	}
	b.store.EnsureUser(uid)
	sess := b.sessions.get(uid)
	sess.reset()

	if b.isAdmin(uid) {
		return c.Send("خوش آمدی ادمین", b.adminMainKeyboard())
	}
	return c.Send("سلام! به ربات سفارش جزوه خوش آمدید.", b.userMainKeyboard(b.store.HasIdentity(uid)))
}

// onText is the single entry point of the state machine: blocking gate,
// user-record bootstrap, then dispatch on the session's current state.
func (b *Bot) onText(c tele.Context) error {
	uid := c.Sender().ID
	if b.store.IsBlocked(uid) {
		return c.Send("🚫 شما مسدود شده‌اید.")
	}
	b.store.EnsureUser(uid)
	sess := b.sessions.get(uid)
	text := strings.TrimSpace(c.Text())

	h, ok := b.handlers[sess.state]
	if !ok {
		h = b.handleMain
	}
	return h(c, sess, text)
}
