// verify_arcade 无窗口自动游玩街机模式，验证出题、碰撞和会话流程
//
// 用法：
//
//	go run ./cmd/verify_arcade --rounds 20 --accuracy 0.8 --verbose
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/deck"
	"github.com/Fannzxyl/kotoba-test/pkg/engine"
	"github.com/Fannzxyl/kotoba-test/pkg/entities"
	"github.com/Fannzxyl/kotoba-test/pkg/round"
	"github.com/Fannzxyl/kotoba-test/pkg/types"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	deckFile   = flag.String("deck-file", "data/decks/sample.yaml", "卡组 YAML 文件")
	configPath = flag.String("config", "data/arcade.yaml", "街机参数文件")
	rounds     = flag.Int("rounds", 20, "最多游玩的轮数")
	accuracy   = flag.Float64("accuracy", 0.8, "自动玩家选中正确气泡的概率")
	seed       = flag.Int64("seed", 1, "随机种子")
	realtime   = flag.Bool("realtime", false, "按 60 TPS 实时运行（默认尽快运行）")
	maxTicks   = flag.Int("max-ticks", 60*60*10, "最多模拟的 tick 数")
)

const tickDT = 1.0 / 60.0

// 自动玩家两次射击之间等待的 tick 数（等待气泡弹出）
const aimDelayTicks = 20

// simulation 无窗口的街机会话
type simulation struct {
	cfg     *config.ArcadeConfig
	engine  *engine.Engine
	rounds  *round.RoundManager
	session *round.Session
	rng     *rand.Rand

	prompt     string
	aimCounter int
	shotFired  bool
	shots      int
}

func newSimulation(cfg *config.ArcadeConfig, pool []types.Card, rng *rand.Rand) *simulation {
	sim := &simulation{
		cfg:     cfg,
		engine:  engine.New(cfg, rng),
		rounds:  round.NewRoundManager(pool, &cfg.Round, rng),
		session: round.NewSession(&cfg.Session),
		rng:     rng,
	}
	sim.engine.OnTargetHit(func(t *components.TargetComponent) {
		points := sim.session.RecordHit()
		log.Printf("[Sim] Round %d: hit %s (+%d)", sim.session.Stats.Round, t.Card.ID, points)
	})
	sim.engine.OnWrongTarget(func(t *components.TargetComponent) {
		log.Printf("[Sim] Round %d: wrong %s", sim.session.Stats.Round, t.Card.ID)
		if sim.session.RecordWrong() {
			sim.engine.Stop()
		}
	})
	return sim
}

func (sim *simulation) start() error {
	sim.session.Start()
	sim.engine.Start()
	return sim.nextRound()
}

func (sim *simulation) nextRound() error {
	level := sim.session.NextRound()
	rd, err := sim.rounds.GenerateRound(level)
	if err != nil {
		return err
	}
	sim.prompt = rd.PromptText
	sim.engine.SetTargets(entities.NewTargetsFromRound(rd, sim.cfg.Surface.Width, sim.cfg.Surface.Height, sim.cfg, sim.rng))
	sim.aimCounter = 0
	sim.shotFired = false
	return nil
}

// tick 推进一帧
//
// 返回:
//   - bool: 会话是否已结束
func (sim *simulation) tick() (bool, error) {
	// 上一发已经命中错误气泡或飞出边界
	if sim.shotFired && len(sim.engine.State().Projectiles) == 0 {
		sim.shotFired = false
	}
	if sim.session.Phase == round.PhasePlaying && !sim.shotFired {
		sim.aimCounter++
		if sim.aimCounter >= aimDelayTicks {
			sim.shoot()
		}
	}

	sim.engine.Update(tickDT)

	if sim.session.Tick(tickDT) {
		if sim.session.Stats.Round >= *rounds {
			return true, nil
		}
		if err := sim.nextRound(); err != nil {
			return true, err
		}
	}
	return sim.session.Phase == round.PhaseGameOver, nil
}

// shoot 按设定的正确率选择气泡并射击
func (sim *simulation) shoot() {
	var correct *components.TargetComponent
	var wrong []*components.TargetComponent
	for _, t := range sim.engine.Targets() {
		if !t.IsAlive {
			continue
		}
		if t.IsCorrect {
			correct = t
		} else {
			wrong = append(wrong, t)
		}
	}

	choice := correct
	if len(wrong) > 0 && sim.rng.Float64() >= *accuracy {
		choice = wrong[sim.rng.Intn(len(wrong))]
	}
	if choice == nil {
		return
	}
	if sim.engine.HandleInput(choice.X, choice.Y) {
		sim.shots++
		sim.shotFired = true
		sim.aimCounter = 0
	}
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "verify_arcade: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadArcadeConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	seedData, err := os.ReadFile(*deckFile)
	if err != nil {
		return fmt.Errorf("read deck: %w", err)
	}
	store, err := deck.NewStore(nil, seedData)
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}
	pool, err := deck.ArcadePool(store.Cards(""), nil, cfg.Round.MinPoolSize)
	if err != nil {
		if errors.Is(err, deck.ErrNotEnoughCards) {
			return fmt.Errorf("deck %s is too small: %w", *deckFile, err)
		}
		return err
	}

	sim := newSimulation(cfg, pool, rand.New(rand.NewSource(*seed)))
	if err := sim.start(); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	startTime := time.Now()
	ticks, err := drive(sim)
	if err != nil {
		return err
	}
	printSummary(sim, ticks, time.Since(startTime))
	return nil
}

// drive 驱动模拟直到结束；--realtime 时使用 60 TPS 的 time.Ticker
func drive(sim *simulation) (int, error) {
	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(time.Second / 60)
		defer ticker.Stop()
	}

	for ticks := 1; ticks <= *maxTicks; ticks++ {
		if ticker != nil {
			<-ticker.C
		}
		done, err := sim.tick()
		if err != nil {
			return ticks, fmt.Errorf("tick %d: %w", ticks, err)
		}
		if done {
			return ticks, nil
		}
	}
	return *maxTicks, nil
}

func printSummary(sim *simulation, ticks int, elapsed time.Duration) {
	stats := sim.session.Stats
	fmt.Println("=== Kotoba Arcade verification ===")
	fmt.Printf("Ticks:       %d (%.1fs simulated, %v wall)\n", ticks, float64(ticks)*tickDT, elapsed.Round(time.Millisecond))
	fmt.Printf("Phase:       %s\n", sim.session.Phase)
	fmt.Printf("Rounds:      %d (level %d)\n", stats.Round, stats.Level)
	fmt.Printf("Shots:       %d\n", sim.shots)
	fmt.Printf("Correct:     %d\n", stats.CorrectCount)
	fmt.Printf("Wrong:       %d\n", stats.WrongCount)
	fmt.Printf("Accuracy:    %.0f%%\n", sim.session.Accuracy()*100)
	fmt.Printf("Score:       %05d\n", stats.Score)
	fmt.Printf("Max streak:  %d\n", stats.MaxStreak)
	fmt.Printf("Lives left:  %d\n", stats.Lives)
	fmt.Printf("Last prompt: %s\n", sim.prompt)
}
