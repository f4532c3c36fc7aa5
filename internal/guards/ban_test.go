package guards

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/logging"
	"go-guardian/internal/store"
)

func TestLadderFor(t *testing.T) {
	cases := []struct {
		name  string
		count int
		limit int
		want  ladderStep
	}{
		{name: "first ban warns", count: 1, limit: 5, want: ladderWarn},
		{name: "mid ladder is silent", count: 2, limit: 5, want: ladderNone},
		{name: "mid ladder is silent high", count: 4, limit: 5, want: ladderNone},
		{name: "limit sanctions", count: 5, limit: 5, want: ladderSanction},
		{name: "past the limit sanctions", count: 6, limit: 5, want: ladderSanction},
		{name: "limit one sanctions immediately", count: 1, limit: 1, want: ladderSanction},
		{name: "zero limit disables the ladder", count: 3, limit: 0, want: ladderNone},
		{name: "negative limit disables the ladder", count: 3, limit: -1, want: ladderNone},
	}

	for _, tc := range cases {
		if got := ladderFor(tc.count, tc.limit); got != tc.want {
			t.Errorf("%s: ladderFor(%d, %d) = %v, want %v", tc.name, tc.count, tc.limit, got, tc.want)
		}
	}
}

// A ban by an exempt moderator passes without touching the ladder counter
// but still leaves a log line.
func TestBanByExemptModeratorLoggedNotCounted(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "guardian.log")
	if err := logging.InitGlobalLogger(logging.LevelInfo, logPath); err != nil {
		t.Fatalf("InitGlobalLogger: %v", err)
	}
	defer func() { logging.GlobalLogger = nil }()

	st := discordgo.NewState()
	if err := st.GuildAdd(&discordgo.Guild{ID: "g1", OwnerID: "owner"}); err != nil {
		t.Fatalf("GuildAdd: %v", err)
	}

	g := &Guards{
		session:   &discordgo.Session{State: st},
		whitelist: store.OpenWhitelist(t.TempDir()),
		banCounts: store.OpenBanCounts(t.TempDir()),
	}

	// Gateway-fed attribution, so no REST fetch is needed.
	auditCache.Store("g1", int(discordgo.AuditLogActionMemberBanAdd), "owner", "victim")

	g.onBanAdd(g.session, &discordgo.GuildBanAdd{GuildID: "g1", User: &discordgo.User{ID: "victim"}})

	if got := g.banCounts.Get("g1", "owner"); got != 0 {
		t.Fatalf("exempt ban must not count toward the ladder, got %d", got)
	}

	logging.GlobalLogger.Close()
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "exempt moderator") {
		t.Fatalf("exempt ban must be logged, log was:\n%s", data)
	}
}

func TestWasBooster(t *testing.T) {
	st := discordgo.NewState()
	if err := st.GuildAdd(&discordgo.Guild{ID: "g1"}); err != nil {
		t.Fatalf("GuildAdd: %v", err)
	}

	since := time.Now().Add(-24 * time.Hour)
	if err := st.MemberAdd(&discordgo.Member{
		GuildID:      "g1",
		User:         &discordgo.User{ID: "booster"},
		PremiumSince: &since,
	}); err != nil {
		t.Fatalf("MemberAdd: %v", err)
	}
	if err := st.MemberAdd(&discordgo.Member{
		GuildID: "g1",
		User:    &discordgo.User{ID: "plain"},
	}); err != nil {
		t.Fatalf("MemberAdd: %v", err)
	}

	g := &Guards{session: &discordgo.Session{State: st}}

	if !g.wasBooster("g1", "booster") {
		t.Fatal("member with PremiumSince must count as booster")
	}
	if g.wasBooster("g1", "plain") {
		t.Fatal("member without PremiumSince must not count as booster")
	}
	// Evicted from the cache: the shield does not fire.
	if g.wasBooster("g1", "unknown") {
		t.Fatal("unknown member must not count as booster")
	}
}
