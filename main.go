package main

import (
	"flag"
	"log"

	"github.com/Fannzxyl/kotoba-test/pkg/app"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/deck"
	"github.com/Fannzxyl/kotoba-test/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	deckID     = flag.String("deck", "", "直接进入指定卡组的街机模式")
	cardIDs    = flag.String("ids", "", "只使用这些卡片（逗号分隔的ID）")
	configPath = flag.String("config", "", "街机参数文件（默认使用内置 data/arcade.yaml）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	fullscreen = flag.Bool("fullscreen", false, "以全屏启动")
	fontPath   = flag.String("font", "", "TTF/OTF 字体文件（日文标签需要 CJK 字体）")
	importPath = flag.String("import", "", "启动时导入的卡组 YAML 文件")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		DeckID:     *deckID,
		CardIDs:    deck.ParseIDs(*cardIDs),
		ConfigPath: *configPath,
		Seed:       *seed,
		Fullscreen: *fullscreen,
		FontPath:   *fontPath,
		ImportPath: *importPath,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Kotoba Arcade")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
