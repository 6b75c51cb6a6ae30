package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	staticcatalog "tavernbot/internal/adapter/catalog/static"
	metricsinmem "tavernbot/internal/adapter/metrics/inmemory"
	genainarrator "tavernbot/internal/adapter/narrator/genai"
	staticnarrator "tavernbot/internal/adapter/narrator/static"
	gormrepo "tavernbot/internal/adapter/repo/gorm"
	memoryrepo "tavernbot/internal/adapter/repo/memory"
	"tavernbot/internal/adapter/telegram"
	"tavernbot/internal/app/event"
	"tavernbot/internal/app/inventory"
	"tavernbot/internal/app/ports"
	"tavernbot/internal/app/session"
	"tavernbot/migrations"
)

func main() {
	_ = godotenv.Load()

	token := strings.TrimSpace(os.Getenv("TAVERNBOT_TOKEN"))
	if token == "" {
		log.Fatal("TAVERNBOT_TOKEN is required")
	}

	catalogPath := envOr("TAVERNBOT_CATALOG", "./items.json")
	catalog, err := staticcatalog.Load(catalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	players, items, playerItems, txManager := mustBuildRepos(catalog.IDs())

	client, err := telegram.NewClient(token)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	narrator, closeNarrator := buildNarrator()
	defer closeNarrator()

	sessions := session.NewStore()
	metrics := metricsinmem.NewRecorder()
	fallback := staticnarrator.Narrator{}

	listener := telegram.Listener{
		CreateUC: event.CreateUseCase{
			Sessions: sessions,
			Players:  players,
			Narrator: narrator,
			Fallback: fallback,
			Chat:     client,
			Metrics:  metrics,
		},
		RollUC: event.RollUseCase{
			Sessions:   sessions,
			Items:      items,
			Catalog:    catalog,
			Narrator:   narrator,
			Fallback:   fallback,
			Chat:       client,
			Metrics:    metrics,
			LootChance: floatEnv("TAVERNBOT_LOOT_CHANCE", 0.35),
		},
		ClaimUC: event.ClaimUseCase{
			Sessions:    sessions,
			TxManager:   txManager,
			Players:     players,
			Items:       items,
			PlayerItems: playerItems,
			Catalog:     catalog,
			Chat:        client,
			Metrics:     metrics,
		},
		InventoryUC: inventory.UseCase{
			TxManager:   txManager,
			Players:     players,
			PlayerItems: playerItems,
			Catalog:     catalog,
			Chat:        client,
			MaxEquipped: intEnv("TAVERNBOT_MAX_EQUIPPED", 3),
		},
	}

	ctx := context.Background()

	ttl := time.Duration(intEnv("TAVERNBOT_SESSION_TTL_MINUTES", 120)) * time.Minute
	go runJanitor(ctx, sessions, metrics, ttl)

	ops := telegram.OpsHandler{Stats: metrics, Sessions: sessions}

	var updates <-chan tgbotapi.Update
	if boolEnv("TAVERNBOT_WEBHOOK", false) {
		intake := make(chan tgbotapi.Update, 64)
		ops.Updates = intake
		updates = intake
		log.Println("webhook mode: updates arrive via POST /webhook")
	} else {
		cfg := tgbotapi.NewUpdate(0)
		cfg.Timeout = 30
		updates = client.Bot().GetUpdatesChan(cfg)
		log.Println("polling mode: long polling the bot api")
	}
	go listener.Run(ctx, updates)

	addr := envOr("TAVERNBOT_OPS_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	ops.RegisterRoutes(s)

	log.Printf("tavernbot listening on %s (catalog: %d items)", addr, catalog.Len())
	s.Spin()
}

// mustBuildRepos wires postgres-backed storage, or the in-memory fallback
// when no DSN is configured. The fallback loses ownership on restart and
// is only meant for trying the bot out.
func mustBuildRepos(itemIDs []string) (ports.PlayerRepository, ports.WorldItemRepository, ports.PlayerItemRepository, ports.TxManager) {
	ctx := context.Background()

	dsn := strings.TrimSpace(os.Getenv("TAVERNBOT_DB_DSN"))
	if dsn == "" {
		log.Println("TAVERNBOT_DB_DSN not set; using in-memory storage")
		store := memoryrepo.NewStore()
		items := memoryrepo.NewWorldItemRepo(store)
		if err := items.SeedCatalog(ctx, itemIDs); err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
		return memoryrepo.NewPlayerRepo(store), items, memoryrepo.NewPlayerItemRepo(store), memoryrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(ctx, db, migrations.FS); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	items := gormrepo.NewWorldItemRepo(db)
	if err := items.SeedCatalog(ctx, itemIDs); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	return gormrepo.NewPlayerRepo(db), items, gormrepo.NewPlayerItemRepo(db), gormrepo.NewTxManager(db)
}

func buildNarrator() (ports.Narrator, func()) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set; using canned narration")
		return staticnarrator.Narrator{}, func() {}
	}

	n, err := genainarrator.New(context.Background(), apiKey, os.Getenv("TAVERNBOT_GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("narrator: %v", err)
	}
	return n, func() { _ = n.Close() }
}

func runJanitor(ctx context.Context, sessions *session.Store, metrics ports.EventMetrics, ttl time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(ttl); n > 0 {
				metrics.RecordExpired(n)
				log.Printf("swept %d expired sessions", n)
			}
		}
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
