package main

import (
	"flag"
	"image"
	"log"
	"os"

	"github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/fonts"
	"github.com/automoto/netsmooth/network"
	"github.com/automoto/netsmooth/scenes"
	"github.com/automoto/netsmooth/shared/protocol"
	"github.com/automoto/netsmooth/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/goregular"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(address, name string) (*Game, error) {
	if err := fonts.LoadFont(fonts.Regular, goregular.TTF); err != nil {
		return nil, err
	}
	if err := fonts.LoadFontWithSize(fonts.Small, goregular.TTF, 11); err != nil {
		return nil, err
	}
	if err := fonts.LoadFontWithSize(fonts.Title, goregular.TTF, 24); err != nil {
		return nil, err
	}

	return &Game{
		scene: scenes.NewNetworkedScene(network.NewClient(), address, name),
	}, nil
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.Viewer.Width, config.Viewer.Height)
	return config.Viewer.Width, config.Viewer.Height
}

func main() {
	hostname, _ := os.Hostname()
	address := flag.String("server", config.Viewer.ServerAddress, "Snapshot server address (host:port)")
	name := flag.String("name", hostname, "Name sent to the server")
	flag.Parse()

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSmoothing(); err == nil && saved != nil {
		config.Smoothing = *saved
	}

	ebiten.SetWindowSize(config.Viewer.Width, config.Viewer.Height)
	ebiten.SetWindowTitle("netsmooth")
	ebiten.SetTPS(config.Viewer.TPS)

	game, err := NewGame(*address, *name)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
