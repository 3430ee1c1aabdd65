package game

import (
	"fmt"
	"strings"
)

func startText(names []string) string {
	return fmt.Sprintf(
		"🎮 猜歌游戏开始！共 %d 人参与\n👥 参与者: %s\n━━━━━━━━━━━━━━━━━━\n规则：听歌猜歌名，第一个猜对得分！\n（游戏进行中仍可发送 🎶 加入）",
		len(names), strings.Join(names, ", "))
}

func roundText(round, total int, audioURL string, seconds int, delivery ClipResult) string {
	header := fmt.Sprintf("🎵 【第 %d/%d 轮】", round, total)
	switch delivery {
	case ClipDelivered:
		return fmt.Sprintf("%s\n请听歌曲片段，猜歌名！\n⏰ %d秒内作答\n💡 发送「#猜歌提示」获取提示", header, seconds)
	case ClipDegraded:
		return fmt.Sprintf("%s\n🔗 %s\n语音发送超时，已切换为链接播放\n⏰ %d秒内作答", header, audioURL, seconds)
	default:
		return fmt.Sprintf("%s\n🔗 %s\n请听歌曲片段，猜歌名！\n⏰ %d秒内作答", header, audioURL, seconds)
	}
}

func answerLine(song Song) string {
	return fmt.Sprintf("答案是：《%s》- %s", song.Title, song.Artist)
}

func correctText(name string, song Song, total int) string {
	return fmt.Sprintf("🎉 恭喜 %s 答对了！\n%s\n本轮得分：+1  总分：%d\n\n正在进入下一轮...",
		name, answerLine(song), total)
}

func revealText(song Song) string {
	return fmt.Sprintf("📢 公布答案\n%s\n\n正在进入下一轮...", answerLine(song))
}

func timeoutText(song Song) string {
	return fmt.Sprintf("⏰ 时间到！\n%s\n\n正在进入下一轮...", answerLine(song))
}

func settlementText(rounds int, result Settlement) string {
	lines := []string{"🎵 【猜歌游戏结束】", fmt.Sprintf("共进行 %d 轮", rounds), "", "📊 本局得分："}

	medals := []string{"🥇", "🥈", "🥉"}
	for i, p := range result.Ranking {
		medal := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			medal = medals[i]
		}
		lines = append(lines, fmt.Sprintf("%s %s: %d分", medal, p.Name, p.Score))
	}

	if c := result.Challenge; c != nil {
		lines = append(lines, "")
		if len(c.Losers) == 1 {
			lines = append(lines,
				fmt.Sprintf("🎯 %s 获胜！", c.Winner.Name),
				fmt.Sprintf("系统随机结果：%s", c.Kind),
				fmt.Sprintf("请 %s 接受【%s】挑战！", c.Losers[0].Name, c.Kind))
		} else {
			names := make([]string, 0, len(c.Losers))
			for _, l := range c.Losers {
				names = append(names, l.Name)
			}
			lines = append(lines,
				fmt.Sprintf("🎯 %s 获胜！", c.Winner.Name),
				fmt.Sprintf("最低分有多人：%s", strings.Join(names, ", ")),
				fmt.Sprintf("系统随机结果：%s", c.Kind),
				fmt.Sprintf("请 %s 指定一人接受挑战！", c.Winner.Name))
		}
	}

	return strings.Join(lines, "\n")
}
