package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/askdeck/askdeck/internal/assistant"
	"github.com/askdeck/askdeck/internal/chat"
	"github.com/askdeck/askdeck/internal/config"
	"github.com/askdeck/askdeck/internal/core"
	"github.com/askdeck/askdeck/internal/domain"
	"github.com/askdeck/askdeck/internal/identity"
	"github.com/askdeck/askdeck/internal/input"
	"github.com/askdeck/askdeck/internal/observability"
	"github.com/askdeck/askdeck/internal/store"
	"github.com/askdeck/askdeck/internal/voice"
)

// Cli runs the client: parse flags, wire the engine, then either execute a
// one-shot command or start the interactive loop.
func Cli() error {
	currentFlags, err := ParseFlags()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogFile, currentFlags.Verbose)
	defer logger.Sync()

	var kv store.KV
	if currentFlags.Incognito {
		kv = store.NewMemoryKV()
	} else {
		fileKV, err := store.NewFileKV(cfg.StorageDir)
		if err != nil {
			return err
		}
		kv = fileKV
	}

	userKey := identity.UserKey(cfg.UserEmail, cfg.AccessToken)
	sessions := store.NewSessionStore(kv)
	counter := store.NewUsageCounter(kv)

	var client assistant.Client
	if currentFlags.DryRun {
		client = assistant.NewDryRun()
	} else {
		client = assistant.NewHTTPClient(cfg.APIURL)
	}

	var dictation voice.Dictation = voice.NoopDictation{}
	var playback voice.Playback = voice.NoopPlayback{}
	if cfg.VoiceURL != "" {
		dictation = voice.NewGatewayDictation(cfg.VoiceURL, logger)
		playback = voice.NewGatewayPlayback(cfg.VoiceURL, logger)
	}

	engine := core.NewEngine(core.Deps{
		UserKey:        userKey,
		Sessions:       sessions,
		Counter:        counter,
		Client:         client,
		Composer:       input.NewComposer(),
		Dictation:      dictation,
		Playback:       playback,
		Logger:         logger,
		Notify:         func(notice string) { fmt.Println(notice) },
		RequestTimeout: cfg.RequestTimeout,
	})

	switch {
	case currentFlags.ListSessions:
		printSessions(engine.Sessions())
		return nil
	case currentFlags.DeleteSession != "":
		return engine.Remove(currentFlags.DeleteSession)
	case currentFlags.Stats:
		printStats(sessions.Stats(userKey, counter), userKey)
		return nil
	}

	if currentFlags.Session != "" {
		if err := engine.Open(currentFlags.Session); err != nil {
			return err
		}
	}
	if currentFlags.Mode != "" {
		mode, ok := domain.ParseMode(currentFlags.Mode)
		if !ok {
			return errors.Errorf("unknown mode %q", currentFlags.Mode)
		}
		engine.Composer().ToggleMode(mode)
	}
	if currentFlags.Attach != "" {
		attachment, err := input.ReadAttachment(currentFlags.Attach)
		if err != nil {
			return err
		}
		engine.Composer().Stage(attachment)
	}

	ctx := context.Background()

	if currentFlags.Voice {
		engine.Dictate(ctx)
		printLastReply(engine)
		return nil
	}
	if currentFlags.Message != "" || currentFlags.Attach != "" {
		engine.Composer().SetText(currentFlags.Message)
		if err := engine.Submit(ctx); err != nil {
			return err
		}
		printLastReply(engine)
		return nil
	}

	return interactiveLoop(ctx, engine, sessions, counter, userKey)
}

func interactiveLoop(ctx context.Context, engine *core.Engine, sessions *store.SessionStore, counter *store.UsageCounter, userKey string) error {
	fmt.Println("What can I help with? (/help for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", promptPrefix(engine))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := command(ctx, engine, sessions, counter, userKey, line); quit {
				return nil
			}
			continue
		}

		engine.Composer().SetText(line)
		if err := engine.Submit(ctx); err != nil {
			continue
		}
		printLastReply(engine)
	}
}

func command(ctx context.Context, engine *core.Engine, sessions *store.SessionStore, counter *store.UsageCounter, userKey, line string) (quit bool) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true
	case "/new":
		engine.StartNew()
		fmt.Println("Started a new chat.")
	case "/open":
		if err := engine.Open(arg); err != nil {
			fmt.Println("No such session.")
			break
		}
		printTranscript(engine.Transcript())
	case "/delete":
		if err := engine.Remove(arg); err != nil {
			fmt.Println("Could not delete session:", err)
		}
	case "/history":
		printSessions(engine.Sessions())
	case "/mode":
		mode, ok := domain.ParseMode(arg)
		if !ok {
			fmt.Println("Unknown mode. Available: search, study, create_image.")
			break
		}
		engine.Composer().ToggleMode(mode)
		if active := engine.Composer().Mode(); active != domain.ModeNone {
			cfg, _ := domain.GetModeConfig(active)
			fmt.Printf("%s %s mode active\n", cfg.Icon, cfg.Label)
		} else {
			fmt.Println("Mode cleared.")
		}
	case "/attach":
		attachment, err := input.ReadAttachment(arg)
		if err != nil {
			fmt.Println("Could not attach file:", err)
			break
		}
		engine.Composer().Stage(attachment)
		fmt.Printf("📎 %s staged. Type your question or just press enter to analyze it.\n", attachment.Name)
	case "/voice":
		fmt.Println("Listening... Speak now")
		engine.Dictate(ctx)
		printLastReply(engine)
	case "/stats":
		printStats(sessions.Stats(userKey, counter), userKey)
	case "/help":
		fmt.Println("Commands: /new /open <id> /delete <id> /history /mode <name> /attach <path> /voice /stats /quit")
	default:
		fmt.Println("Unknown command. /help lists the available ones.")
	}
	return false
}

func promptPrefix(engine *core.Engine) string {
	composer := engine.Composer()
	if composer.Attachment() != nil {
		return "📎"
	}
	if cfg, ok := domain.GetModeConfig(composer.Mode()); ok {
		return cfg.Icon
	}
	return ""
}

func printLastReply(engine *core.Engine) {
	transcript := engine.Transcript()
	if len(transcript) == 0 {
		return
	}
	last := transcript[len(transcript)-1]
	if last.Role == chat.RoleAssistant {
		fmt.Println(last.Text)
	}
}

func printTranscript(transcript []chat.Message) {
	for _, msg := range transcript {
		prefix := "you"
		if msg.Role == chat.RoleAssistant {
			prefix = " ai"
		}
		fmt.Printf("%s: %s\n", prefix, msg.Text)
	}
}

func printSessions(sessions []chat.Session) {
	if len(sessions) == 0 {
		fmt.Println("No chat history yet")
		return
	}
	for _, session := range sessions {
		fmt.Printf("%s  %-43s %3d messages  %s\n",
			session.ID, session.Title, len(session.Messages),
			session.UpdatedAt.Format("2 Jan 2006 15:04"))
	}
}

func printStats(stats store.UserStats, userKey string) {
	fmt.Printf("Total searches (all users): %d\n", stats.GlobalSearchCount)
	if !identity.IsLoggedIn(userKey) {
		fmt.Println("Log in to see your personal chat history and detailed stats")
		return
	}
	fmt.Printf("Your chats: %d  messages: %d  questions: %d  replies: %d\n",
		stats.TotalChats, stats.TotalMessages, stats.TotalQuestions, stats.TotalReplies)
	if len(stats.RecentSessions) > 0 {
		fmt.Println("Recent chats:")
		printSessions(stats.RecentSessions)
	}
}
