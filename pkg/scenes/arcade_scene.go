package scenes

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/engine"
	"github.com/Fannzxyl/kotoba-test/pkg/entities"
	"github.com/Fannzxyl/kotoba-test/pkg/game"
	"github.com/Fannzxyl/kotoba-test/pkg/render"
	"github.com/Fannzxyl/kotoba-test/pkg/round"
	"github.com/Fannzxyl/kotoba-test/pkg/types"
	"github.com/Fannzxyl/kotoba-test/pkg/ui"
	"github.com/Fannzxyl/kotoba-test/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ArcadeScene 街机模式场景
//
// 持有引擎、出题器和会话状态，负责：
//   - 把指针和键盘输入转发给引擎或会话
//   - 在命中回调中更新分数、生命，并在过渡结束后生成下一轮
//   - 结束时提交卡组最高分
//   - 在引擎画面之上绘制 HUD 和菜单/结束遮罩
type ArcadeScene struct {
	sceneManager    *game.SceneManager
	audioManager    *game.AudioManager
	settingsManager *game.SettingsManager
	cfg             *config.ArcadeConfig

	engine   *engine.Engine
	renderer *render.Renderer
	rounds   *round.RoundManager
	session *round.Session
	rng     *rand.Rand

	deckID   string
	deckName string
	poolSize int
	prompt   string
	newBest  bool // 本局刷新了最高分

	width, height float64
	fonts         hudFonts
}

// ArcadeOptions 创建街机场景的参数
type ArcadeOptions struct {
	ResourceManager *game.ResourceManager
	SceneManager    *game.SceneManager
	AudioManager    *game.AudioManager    // 可为 nil（静音）
	Settings        *game.SettingsManager // 可为 nil（不记录最高分）
	Config          *config.ArcadeConfig
	Pool            []types.Card // 已通过最少卡片数检查的卡池
	DeckID          string
	DeckName        string
	Rand            *rand.Rand
}

// NewArcadeScene 创建处于菜单阶段的街机场景
func NewArcadeScene(opts ArcadeOptions) *ArcadeScene {
	cfg := opts.Config
	rng := opts.Rand

	// 每局卡片顺序不同
	pool := make([]types.Card, len(opts.Pool))
	copy(pool, opts.Pool)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	s := &ArcadeScene{
		sceneManager:    opts.SceneManager,
		audioManager:    opts.AudioManager,
		settingsManager: opts.Settings,
		cfg:             cfg,
		engine:          engine.New(cfg, rng),
		renderer:        render.NewRenderer(opts.ResourceManager.Font(config.LabelFontSize)),
		rounds:          round.NewRoundManager(pool, &cfg.Round, rng),
		session:         round.NewSession(&cfg.Session),
		rng:             rng,
		deckID:          opts.DeckID,
		deckName:        opts.DeckName,
		poolSize:        len(pool),
		width:           cfg.Surface.Width,
		height:          cfg.Surface.Height,
		fonts:           newHUDFonts(opts.ResourceManager),
	}
	s.engine.OnTargetHit(s.onTargetHit)
	s.engine.OnWrongTarget(s.onWrongTarget)

	log.Printf("[ArcadeScene] Created with %d cards (deck=%s)", len(pool), opts.DeckName)
	return s
}

// Resize 实现 game.Resizable
func (s *ArcadeScene) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.engine.Resize(width, height)
}

// Update 处理输入并推进模拟
func (s *ArcadeScene) Update(deltaTime float64) {
	s.handleInput()
	s.step(deltaTime)
}

func (s *ArcadeScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.engine.Stop()
		s.sceneManager.Navigate(game.Route{Name: game.RouteDecks})
		return
	}

	clicked, x, y := ui.JustPressed()
	space := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	switch s.session.Phase {
	case round.PhaseMenu, round.PhaseGameOver:
		if clicked || space {
			s.startGame()
		}
	default:
		if clicked {
			s.fire(float64(x), float64(y))
		}
	}
}

// step 推进一帧（不读取输入）
func (s *ArcadeScene) step(deltaTime float64) {
	s.engine.Update(deltaTime)
	if s.session.Tick(deltaTime) {
		s.nextRound()
	}
}

// fire 把点击转发给引擎，发射成功时播放音效
func (s *ArcadeScene) fire(x, y float64) {
	if s.engine.HandleInput(x, y) {
		s.audioManager.PlaySound(game.SoundFire)
	}
}

// startGame 重置会话并开始第一轮
func (s *ArcadeScene) startGame() {
	s.newBest = false
	s.session.Start()
	s.engine.Start()
	s.nextRound()
}

// nextRound 生成下一轮题目并交给引擎
func (s *ArcadeScene) nextRound() {
	level := s.session.NextRound()

	rd, err := s.rounds.GenerateRound(level)
	if err != nil {
		// 卡池在创建场景前已经检查过，这里出错说明卡池被替换为空
		log.Printf("[ArcadeScene] Error: failed to generate round: %v", err)
		if errors.Is(err, round.ErrNoCardsAvailable) {
			s.endGame()
		}
		return
	}

	s.prompt = rd.PromptText
	targets := entities.NewTargetsFromRound(rd, s.width, s.height, s.cfg, s.rng)
	s.engine.SetTargets(targets)
	log.Printf("[ArcadeScene] Round %d (level %d): %d targets, answer=%s",
		s.session.Stats.Round, level, len(targets), rd.CorrectCard.ID)
}

func (s *ArcadeScene) onTargetHit(target *components.TargetComponent) {
	points := s.session.RecordHit()
	s.audioManager.PlaySound(game.SoundHit)
	log.Printf("[ArcadeScene] Hit %s (+%d)", target.Card.ID, points)
}

func (s *ArcadeScene) onWrongTarget(target *components.TargetComponent) {
	s.audioManager.PlaySound(game.SoundWrong)
	if s.session.RecordWrong() {
		s.endGame()
		return
	}
	log.Printf("[ArcadeScene] Wrong target %s, lives=%d", target.Card.ID, s.session.Stats.Lives)
}

// endGame 停止引擎、进入结束阶段并提交最高分
func (s *ArcadeScene) endGame() {
	s.engine.Stop()
	s.session.Phase = round.PhaseGameOver
	s.audioManager.PlaySound(game.SoundGameOver)
	s.recordScore()
}

func (s *ArcadeScene) recordScore() {
	if s.settingsManager == nil {
		return
	}
	score := s.session.Stats.Score
	if !s.settingsManager.RecordScore(s.deckID, score) {
		return
	}
	s.newBest = true
	log.Printf("[ArcadeScene] New best score for %s: %d", s.deckID, score)
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[ArcadeScene] Warning: failed to save best score: %v", err)
	}
}

// bestScore 当前卡组的最高分
func (s *ArcadeScene) bestScore() int {
	if s.settingsManager == nil {
		return 0
	}
	return s.settingsManager.BestScore(s.deckID)
}

// Draw 绘制引擎画面、HUD 和遮罩
func (s *ArcadeScene) Draw(screen *ebiten.Image) {
	s.renderer.DrawFrame(screen, s.engine.State())

	stats := s.session.Stats
	switch s.session.Phase {
	case round.PhaseMenu:
		drawOverlay(screen, s.fonts, s.width, s.height, "Kotoba Arcade",
			fmt.Sprintf("%s • %d cards", s.deckName, s.poolSize),
			bestScoreLabel(s.bestScore(), false),
			"Shoot the bubble that matches the meaning",
			startHint(),
			"Esc: back to decks",
		)
	case round.PhaseGameOver:
		drawHUD(screen, s.fonts, stats, s.cfg.Session.Lives, s.prompt, s.width)
		drawOverlay(screen, s.fonts, s.width, s.height, "Game Over",
			fmt.Sprintf("Score %s • Best streak %d", formatScore(stats.Score), stats.MaxStreak),
			fmt.Sprintf("Accuracy %.0f%% • Rounds %d", s.session.Accuracy()*100, stats.Round),
			bestScoreLabel(s.bestScore(), s.newBest),
			startHint(),
		)
	default:
		drawHUD(screen, s.fonts, stats, s.cfg.Session.Lives, s.prompt, s.width)
	}
}

// startHint 根据平台返回开始提示
func startHint() string {
	if utils.IsMobile() {
		return "Tap to start"
	}
	return "Click or press Space to start"
}

// Session 返回会话状态
func (s *ArcadeScene) Session() *round.Session {
	return s.session
}

// Engine 返回引擎
func (s *ArcadeScene) Engine() *engine.Engine {
	return s.engine
}

// Prompt 返回当前提示文字
func (s *ArcadeScene) Prompt() string {
	return s.prompt
}
