// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/deck"
	"github.com/Fannzxyl/kotoba-test/pkg/embedded"
	"github.com/Fannzxyl/kotoba-test/pkg/game"
	"github.com/Fannzxyl/kotoba-test/pkg/scenes"
	"github.com/Fannzxyl/kotoba-test/pkg/storage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储目录名
const AppName = "kotoba_arcade"

// 嵌入资源路径
const (
	arcadeConfigPath = "data/arcade.yaml"
	seedDeckPattern  = "data/decks/*.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// DeckID 直接进入该卡组的街机模式，为空时显示卡组列表
	DeckID string
	// CardIDs 只使用这些卡片（逗号分隔解析后的结果），为空时使用整个卡组
	CardIDs []string
	// ConfigPath 街机参数文件，为空时使用嵌入的 data/arcade.yaml
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Fullscreen 以全屏启动
	Fullscreen bool
	// FontPath 替换默认字体（日文卡组需要 CJK 字体）
	FontPath string
	// ImportPath 启动时导入的卡组文件（格式同 data/decks/*.yaml）
	ImportPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !embedded.IsInitialized() {
		return nil, embedded.ErrNotInitialized
	}

	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	arcadeConfig, err := loadArcadeConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("街机配置加载失败: %w", err)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(game.SampleRate)

	// 创建资源管理器
	resourceManager, err := game.NewResourceManager(audioContext)
	if err != nil {
		return nil, fmt.Errorf("资源管理器初始化失败: %w", err)
	}
	if cfg.FontPath != "" {
		if err := resourceManager.LoadFontSource(cfg.FontPath); err != nil {
			return nil, fmt.Errorf("字体加载失败: %w", err)
		}
		log.Printf("[App] Font loaded: %s", cfg.FontPath)
	}

	// 持久化存储（失败时降级为内存模式）
	gdataManager, err := storage.Open(AppName)
	if err != nil {
		log.Printf("[App] Warning: progress will not be saved: %v", err)
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}

	seeds, err := loadSeedDecks()
	if err != nil {
		return nil, fmt.Errorf("默认卡组读取失败: %w", err)
	}
	store, err := deck.NewStore(gdataManager, seeds...)
	if err != nil {
		return nil, fmt.Errorf("卡组加载失败: %w", err)
	}

	if cfg.ImportPath != "" {
		imported, err := importDeck(store, cfg.ImportPath)
		if err != nil {
			return nil, fmt.Errorf("卡组导入失败: %w", err)
		}
		settingsManager.SetLastDeckID(imported.ID)
	}

	audioManager := game.NewAudioManager(resourceManager, settingsManager, game.DefaultSoundBank)
	log.Printf("[App] AudioManager initialized")

	rngSeed := cfg.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))
	log.Printf("[App] Random seed: %d", rngSeed)

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(route game.Route) game.Scene {
		switch route.Name {
		case game.RouteArcade:
			return newArcadeOrNotice(route, arcadeDeps{
				rm:       resourceManager,
				sm:       sceneManager,
				am:       audioManager,
				settings: settingsManager,
				store:    store,
				cfg:      arcadeConfig,
				rng:      rng,
			})
		case game.RouteNotice:
			return scenes.NewNoticeScene(resourceManager, sceneManager, route.Message)
		default:
			return scenes.NewDeckSelectScene(resourceManager, sceneManager, settingsManager, store, arcadeConfig.Round.MinPoolSize)
		}
	})

	// --deck 直接进入街机模式
	if cfg.DeckID != "" {
		sceneManager.Navigate(game.Route{Name: game.RouteArcade, DeckID: cfg.DeckID, CardIDs: cfg.CardIDs})
	} else {
		sceneManager.Navigate(game.Route{Name: game.RouteDecks})
	}

	if cfg.Fullscreen || settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// loadArcadeConfig 从文件或嵌入资源加载街机参数
// 没有指定文件且嵌入资源中也没有时使用默认参数
func loadArcadeConfig(path string) (*config.ArcadeConfig, error) {
	if path != "" {
		log.Printf("[Config] Loading arcade config from %s", path)
		return config.LoadArcadeConfig(path)
	}
	if !embedded.Exists(arcadeConfigPath) {
		log.Printf("[Config] %s not embedded, using defaults", arcadeConfigPath)
		return config.DefaultArcadeConfig(), nil
	}
	data, err := embedded.ReadFile(arcadeConfigPath)
	if err != nil {
		return nil, err
	}
	return config.LoadArcadeConfigFromBytes(data)
}

// loadSeedDecks 读取所有嵌入的默认卡组，每个文件一个卡组
func loadSeedDecks() ([][]byte, error) {
	paths, err := embedded.Glob(seedDeckPattern)
	if err != nil {
		return nil, err
	}
	seeds := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		seeds = append(seeds, data)
	}
	log.Printf("[App] Found %d seed decks", len(seeds))
	return seeds, nil
}

// importDeck 把卡组文件导入存储
func importDeck(store *deck.Store, path string) (deck.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return deck.Deck{}, err
	}
	d, added, err := store.ImportDeck(data)
	if err != nil {
		return deck.Deck{}, err
	}
	log.Printf("[App] Imported %d cards from %s into %s", added, path, d.Name)
	return d, nil
}

// arcadeDeps 创建街机场景需要的依赖
type arcadeDeps struct {
	rm       *game.ResourceManager
	sm       *game.SceneManager
	am       *game.AudioManager
	settings *game.SettingsManager
	store    *deck.Store
	cfg      *config.ArcadeConfig
	rng      *rand.Rand
}

// newArcadeOrNotice 按路由创建街机场景；卡片不足时返回提示场景
func newArcadeOrNotice(route game.Route, deps arcadeDeps) game.Scene {
	rm, sm, store, cfg := deps.rm, deps.sm, deps.store, deps.cfg
	d, ok := store.Deck(route.DeckID)
	if !ok {
		log.Printf("[App] Deck not found: %s", route.DeckID)
		return scenes.NewNoticeScene(rm, sm, fmt.Sprintf("Deck %q not found.", route.DeckID))
	}

	pool, err := deck.ArcadePool(store.Cards(d.ID), route.CardIDs, cfg.Round.MinPoolSize)
	if err != nil {
		log.Printf("[App] Cannot start arcade for deck %s: %v", d.ID, err)
		if errors.Is(err, deck.ErrNotEnoughCards) {
			return scenes.NewNoticeScene(rm, sm, fmt.Sprintf(
				"%s needs at least %d cards with a meaning or reading to play the arcade.", d.Name, cfg.Round.MinPoolSize))
		}
		return scenes.NewNoticeScene(rm, sm, err.Error())
	}

	return scenes.NewArcadeScene(scenes.ArcadeOptions{
		ResourceManager: rm,
		SceneManager:    sm,
		AudioManager:    deps.am,
		Settings:        deps.settings,
		Config:          cfg,
		Pool:            pool,
		DeckID:          d.ID,
		DeckName:        d.Name,
		Rand:            deps.rng,
	})
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settingsManager.SetFullscreen(!isFullscreen)
		if err := a.settingsManager.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 逻辑尺寸跟随窗口大小，新尺寸在下一次 Update 开始时转发给当前场景
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return config.GameWindowWidth, config.GameWindowHeight
	}
	a.sceneManager.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
