package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"guess-song-backend/internal/config"
	"guess-song-backend/internal/game"
	"guess-song-backend/internal/services"
)

type UpdateHandler struct {
	client      *Client
	engine      *game.Engine
	leaderboard *services.LeaderboardService
	cfg         *config.Config
}

func NewUpdateHandler(client *Client, engine *game.Engine, leaderboard *services.LeaderboardService, cfg *config.Config) *UpdateHandler {
	return &UpdateHandler{
		client:      client,
		engine:      engine,
		leaderboard: leaderboard,
		cfg:         cfg,
	}
}

func (h *UpdateHandler) Handle(upd Update) {
	if upd.CallbackQuery != nil {
		h.handleCallback(upd.CallbackQuery)
		return
	}
	if upd.Message != nil {
		h.handleMessage(upd.Message)
	}
}

func isGroupChat(chat Chat) bool {
	return chat.Type == "group" || chat.Type == "supergroup"
}

func displayName(u *User) string {
	if u == nil {
		return "玩家"
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "玩家"
}

func (h *UpdateHandler) handleMessage(msg *Message) {
	if msg.From == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	chatID := msg.Chat.ID
	groupID := strconv.FormatInt(chatID, 10)
	userID := strconv.FormatInt(msg.From.ID, 10)
	name := displayName(msg.From)

	switch text {
	case "#猜歌帮助":
		h.reply(chatID, helpText())
		return
	case "#猜歌", "#开始猜歌", "#猜歌提示", "#猜歌答案", "#猜歌退出", "#猜歌结束", "#猜歌排行":
		if !isGroupChat(msg.Chat) {
			h.reply(chatID, "❌ 猜歌游戏仅支持群聊使用。")
			return
		}
	}

	switch text {
	case "#猜歌":
		h.cmdCreate(chatID, groupID, userID, name)
	case "#开始猜歌":
		h.cmdStart(chatID, groupID, userID, name)
	case "#猜歌提示":
		h.cmdHint(chatID, groupID)
	case "#猜歌答案":
		h.cmdReveal(chatID, groupID, userID)
	case "#猜歌退出":
		h.cmdQuit(chatID, groupID)
	case "#猜歌结束":
		h.cmdForceEnd(chatID, groupID, userID, name)
	case "#猜歌排行":
		h.cmdRanking(chatID, groupID)
	default:
		if !isGroupChat(msg.Chat) {
			return
		}
		if strings.Contains(text, "🎶") {
			h.join(chatID, groupID, userID, name)
			return
		}
		if h.engine.SubmitAnswer(groupID, userID, name, text) == game.AnswerNotJoined {
			h.reply(chatID, "❌ 请先发送 🎶 加入游戏")
		}
	}
}

func (h *UpdateHandler) handleCallback(cb *CallbackQuery) {
	if cb.Message == nil || cb.Data != "join" {
		return
	}

	chatID := cb.Message.Chat.ID
	groupID := strconv.FormatInt(chatID, 10)
	userID := strconv.FormatInt(cb.From.ID, 10)
	name := displayName(&cb.From)

	info, err := h.engine.Join(groupID, userID, name)
	switch {
	case errors.Is(err, game.ErrAlreadyJoined):
		h.client.AnswerCallbackQuery(cb.ID, "你已经加入了", false)
	case errors.Is(err, game.ErrRosterFull):
		h.client.AnswerCallbackQuery(cb.ID, fmt.Sprintf("人数已满 (%d人)", h.engine.Config().MaxPlayers), true)
	case errors.Is(err, game.ErrNoActiveGame):
		h.client.AnswerCallbackQuery(cb.ID, "当前没有进行中的游戏", false)
	case err != nil:
		h.client.AnswerCallbackQuery(cb.ID, "加入失败", false)
	default:
		h.client.AnswerCallbackQuery(cb.ID, "加入成功", false)
		h.announceJoin(chatID, name, info)
	}
}

func (h *UpdateHandler) cmdCreate(chatID int64, groupID, userID, name string) {
	cfg := h.engine.Config()
	_, err := h.engine.Create(groupID, userID, name)
	if errors.Is(err, game.ErrGameExists) {
		view, ok := h.engine.Game(groupID)
		if !ok {
			h.reply(chatID, "❌ 游戏状态异常，请发送「#猜歌退出」后重试")
			return
		}
		switch view.Status {
		case game.StatusWaiting:
			h.reply(chatID, fmt.Sprintf(
				"⏳ 已有游戏等待中\n👥 当前人数: %d人\n\n💡 发送 🎶 加入游戏\n💡 发送「#开始猜歌」开始游戏",
				len(view.Players)))
		default:
			h.reply(chatID, fmt.Sprintf(
				"🎮 游戏进行中！\n第 %d/%d 轮\n发送 🎶 加入游戏\n发送「#猜歌退出」结束游戏",
				view.Round, cfg.MaxRounds))
		}
		return
	}
	if err != nil {
		h.reply(chatID, "❌ 创建游戏失败，请稍后重试")
		return
	}

	text := fmt.Sprintf(
		"🎵 【猜歌游戏已创建】\n━━━━━━━━━━━━━━━━━━\n📖 游戏规则：\n• 听歌曲片段猜歌名\n• 抢答制，第一个猜对得分\n• 每轮限时 %d 秒\n• 共 %d 轮\n━━━━━━━━━━━━━━━━━━\n✅ %s 已加入 (1人)\n\n💡 发送 🎶 加入游戏\n💡 发送「#开始猜歌」开始游戏",
		int(cfg.RoundDuration.Seconds()), cfg.MaxRounds, name)
	h.client.SendMessage(chatID, text, "", JoinKeyboard())
}

func (h *UpdateHandler) cmdStart(chatID int64, groupID, userID, name string) {
	err := h.engine.Start(groupID, userID, h.cfg.IsAdmin(userID))
	switch {
	case err == nil:
		h.reply(chatID, fmt.Sprintf("🚀 %s 启动了游戏！正在获取歌曲...", name))
	case errors.Is(err, game.ErrNoActiveGame):
		h.reply(chatID, "❌ 请先发送「#猜歌」创建游戏")
	case errors.Is(err, game.ErrNotWaiting):
		h.replyProgress(chatID, groupID)
	case errors.Is(err, game.ErrTooFewPlayers):
		h.reply(chatID, fmt.Sprintf("❌ 人数不足，至少需要 %d 人才能开始", h.engine.Config().MinPlayers))
	case errors.Is(err, game.ErrUnauthorized):
		h.reply(chatID, "❌ 只有游戏创建者或管理员可以开始游戏")
	default:
		h.reply(chatID, "❌ 游戏状态异常，请发送「#猜歌退出」后重试")
	}
}

// replyProgress shows the current round and hint when someone tries to
// start a game that is already running.
func (h *UpdateHandler) replyProgress(chatID int64, groupID string) {
	view, ok := h.engine.Game(groupID)
	if !ok || view.Status != game.StatusPlaying {
		h.reply(chatID, "❌ 游戏状态异常，请发送「#猜歌退出」后重试")
		return
	}
	h.reply(chatID, fmt.Sprintf(
		"🎵 游戏进行中！\n第 %d/%d 轮\n💡 发送「#猜歌提示」获取提示",
		view.Round, h.engine.Config().MaxRounds))
}

func (h *UpdateHandler) cmdHint(chatID int64, groupID string) {
	info, err := h.engine.RequestHint(groupID)
	if err != nil {
		h.reply(chatID, "❌ 当前没有进行中的猜歌游戏。发送「#猜歌」开始游戏。")
		return
	}
	h.reply(chatID, fmt.Sprintf("💡 提示 #%d\n歌名：%s\n歌手：%s", info.Level, info.Masked, info.Artist))
}

func (h *UpdateHandler) cmdReveal(chatID int64, groupID, userID string) {
	if !h.cfg.IsAdmin(userID) {
		h.reply(chatID, "❌ 只有管理员可以提前公布答案。")
		return
	}
	if err := h.engine.Reveal(groupID); err != nil {
		h.reply(chatID, "❌ 当前没有进行中的猜歌游戏。")
	}
}

func (h *UpdateHandler) cmdQuit(chatID int64, groupID string) {
	if err := h.engine.Terminate(groupID); err != nil {
		h.reply(chatID, "❌ 当前没有进行中的猜歌游戏。")
	}
}

func (h *UpdateHandler) cmdForceEnd(chatID int64, groupID, userID, name string) {
	if !h.cfg.IsAdmin(userID) {
		h.reply(chatID, "❌ 只有管理员可以强制结束游戏。")
		return
	}
	if _, ok := h.engine.Game(groupID); !ok {
		h.reply(chatID, "❌ 当前没有进行中的猜歌游戏。")
		return
	}
	h.reply(chatID, fmt.Sprintf("🛑 管理员 %s 强制结束游戏\n\n正在结算...", name))
	h.engine.Terminate(groupID)
}

func (h *UpdateHandler) cmdRanking(chatID int64, groupID string) {
	stats, err := h.leaderboard.Top(groupID, 10)
	if err != nil || len(stats) == 0 {
		h.reply(chatID, "📊 暂无排行榜数据，快来玩猜歌游戏吧！")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	lines := []string{"🏆 【猜歌排行榜】", ""}
	for i, s := range stats {
		medal := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			medal = medals[i]
		}
		lines = append(lines, fmt.Sprintf("%s %s: %d分 (%d胜)", medal, s.Nickname, s.Score, s.Wins))
	}
	h.reply(chatID, strings.Join(lines, "\n"))
}

func (h *UpdateHandler) join(chatID int64, groupID, userID, name string) {
	info, err := h.engine.Join(groupID, userID, name)
	switch {
	case errors.Is(err, game.ErrNoActiveGame):
		// no session in this group, stay quiet
	case errors.Is(err, game.ErrAlreadyJoined):
		h.reply(chatID, "❌ 你已经加入了")
	case errors.Is(err, game.ErrRosterFull):
		h.reply(chatID, fmt.Sprintf("❌ 人数已满 (%d人)", h.engine.Config().MaxPlayers))
	case err == nil:
		h.announceJoin(chatID, name, info)
	}
}

func (h *UpdateHandler) announceJoin(chatID int64, name string, info game.JoinInfo) {
	if info.Status == game.StatusWaiting {
		h.reply(chatID, fmt.Sprintf("✅ %s 加入成功 (%d人)\n💡 发送「#开始猜歌」开始游戏", name, info.Count))
	} else {
		h.reply(chatID, fmt.Sprintf("✅ %s 中途加入成功 (%d人)", name, info.Count))
	}
}

func (h *UpdateHandler) reply(chatID int64, text string) {
	h.client.SendMessage(chatID, text, "", nil)
}

func helpText() string {
	return "🎵 【猜歌游戏帮助】\n" +
		"━━━━━━━━━━━━━━━━━━\n" +
		"📌 命令列表：\n" +
		"  #猜歌 - 创建游戏\n" +
		"  🎶 - 加入游戏\n" +
		"  #开始猜歌 - 开始游戏\n" +
		"  #猜歌提示 - 获取提示\n" +
		"  #猜歌答案 - 公布答案（管理员）\n" +
		"  #猜歌结束 - 强制结束（管理员）\n" +
		"  #猜歌排行 - 查看历史排行榜\n" +
		"  #猜歌退出 - 结束游戏\n" +
		"━━━━━━━━━━━━━━━━━━\n" +
		"💡 玩法：\n" +
		"1. 发送 #猜歌 创建游戏\n" +
		"2. 群友发送 🎶 加入\n" +
		"3. 发送 #开始猜歌 开始\n" +
		"4. 直接发送歌名抢答\n" +
		"5. 答对自动下一轮！\n\n" +
		"🎭 游戏结束后：\n" +
		"最高分向最低分发起真心话/大冒险挑战！"
}
