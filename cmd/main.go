// headmouse - head tracking mouse bridge
// Drives the mouse from OpenTrack head pose and joystick buttons.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/browser"

	"headmouse/internal/activation"
	"headmouse/internal/api"
	"headmouse/internal/autostart"
	"headmouse/internal/bridge"
	"headmouse/internal/config"
	"headmouse/internal/device"
	"headmouse/internal/input"
	"headmouse/internal/network"
	"headmouse/internal/osutils"
	"headmouse/internal/tray"
)

var (
	version    = "0.1.0"
	configPath = flag.String("config", "", "Settings file (.json or .toml), default is the per-user location")
	listDevs   = flag.Bool("list", false, "List attached input devices")
	editCfg    = flag.Bool("edit", false, "Open the settings file in the default editor")
	initCfg    = flag.Bool("init", false, "Write a default settings file if none exists")
	noTray     = flag.Bool("no-tray", false, "Run without the system tray icon")
	dryRun     = flag.Bool("dry-run", false, "Log synthesized events instead of injecting them")
	showVer    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("headmouse version %s\n", version)
		return
	}

	if *listDevs {
		listDevices()
		return
	}

	cfgMgr, err := config.NewManager(*configPath)
	if err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	if err := cfgMgr.Load(); err != nil {
		log.Printf("Warning: failed to load settings: %v", err)
	}

	if *initCfg {
		initSettings(cfgMgr)
		return
	}

	if *editCfg {
		if err := openSettings(cfgMgr); err != nil {
			log.Fatalf("Failed to open settings: %v", err)
		}
		return
	}

	runService(cfgMgr)
}

func listDevices() {
	devices, err := device.List()
	if err != nil {
		log.Fatalf("Failed to list devices: %v", err)
	}

	fmt.Println("Input Devices:")
	fmt.Println("--------------")
	if len(devices) == 0 {
		fmt.Println("(none)")
	}
	for _, d := range devices {
		fmt.Printf("ID: %d\n", d.ID)
		fmt.Printf("  Name: %s\n", d.Name)
		fmt.Printf("  GUID: %s\n", d.GUID)
		fmt.Println()
	}
}

func initSettings(cfgMgr *config.Manager) {
	if _, err := os.Stat(cfgMgr.Path()); err == nil {
		fmt.Printf("Settings already exist at %s\n", cfgMgr.Path())
		return
	}
	if err := cfgMgr.Save(); err != nil {
		log.Fatalf("Failed to write settings: %v", err)
	}
	fmt.Printf("Wrote default settings to %s\n", cfgMgr.Path())
}

// openSettings opens the settings file with the system handler, creating it first if needed.
func openSettings(cfgMgr *config.Manager) error {
	if _, err := os.Stat(cfgMgr.Path()); os.IsNotExist(err) {
		if err := cfgMgr.Save(); err != nil {
			return err
		}
	}
	return browser.OpenFile(cfgMgr.Path())
}

func runService(cfgMgr *config.Manager) {
	cfg := cfgMgr.Get()
	log.Printf("headmouse %s starting, settings at %s", version, cfgMgr.Path())

	if runtime.GOOS == "windows" && !osutils.IsAdmin() {
		log.Println("Note: not running elevated; input will not reach elevated windows")
	}

	receiver := network.NewPoseReceiver(cfg.Pose.ListenAddr, cfg.PoseTimeout())
	if err := receiver.Start(); err != nil {
		log.Fatalf("Failed to start pose receiver on %s: %v", cfg.Pose.ListenAddr, err)
	}
	defer receiver.Stop()

	var injector input.Injector = input.NewSystemInjector()
	if *dryRun {
		log.Println("Dry run: events are logged, not injected")
		injector = input.NewLogger()
	}

	br := bridge.New(cfg, bridge.Options{
		Injector:   injector,
		Pose:       receiver,
		OpenDevice: device.Open,
		Focus: func(s *config.Settings) activation.Focus {
			return osutils.NewForeground(s.TargetProcess)
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgMgr.RegisterChangeCallback(func(s *config.Settings) {
		if s.Pose != cfg.Pose || s.API != cfg.API {
			log.Println("Config: Pose and API changes take effect after restart")
		}
		br.Reload(s)
	})
	if err := cfgMgr.Watch(ctx); err != nil {
		log.Printf("Warning: settings will not reload automatically: %v", err)
	}

	var apiServer *api.Server
	if cfg.API.Enabled {
		apiServer = api.NewServer(cfgMgr, br)
		br.AddObserver(apiServer)
		go func() {
			if err := apiServer.Start(cfg.API.Port); err != nil {
				log.Printf("API server error: %v", err)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		br.Run(ctx)
		close(done)
	}()

	shutdown := func() {
		log.Println("Shutting down...")
		cancel()
		<-done
		if apiServer != nil {
			sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer scancel()
			apiServer.Shutdown(sctx)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if *noTray || !cfg.Tray {
		<-sigCh
		shutdown()
		return
	}

	t := tray.New("headmouse - head tracking mouse", nil)
	statusItem := t.AddItem(statusTitle(br.Status()), nil)
	t.AddSeparator()
	t.AddItem("Edit settings...", func() {
		if err := openSettings(cfgMgr); err != nil {
			log.Printf("Failed to open settings: %v", err)
		}
	})
	t.AddItem("Reload settings", func() {
		if err := cfgMgr.Load(); err != nil {
			log.Printf("Failed to reload settings: %v", err)
		}
	})
	var loginItem *tray.Item
	loginItem = t.AddItem("Start at login", func() {
		toggleAutostart(cfgMgr, loginItem)
	})
	loginItem.SetChecked(autostart.IsEnabled())
	t.AddSeparator()
	t.AddItem("Quit", t.Stop)

	br.AddObserver(&trayObserver{tray: t, status: statusItem})

	go func() {
		<-sigCh
		t.Stop()
	}()

	t.Run()
	shutdown()
}

func toggleAutostart(cfgMgr *config.Manager, item *tray.Item) {
	if autostart.IsEnabled() {
		if err := autostart.Disable(); err != nil {
			log.Printf("Failed to disable start at login: %v", err)
		}
	} else {
		var args []string
		if *configPath != "" {
			path, err := filepath.Abs(cfgMgr.Path())
			if err != nil {
				path = cfgMgr.Path()
			}
			args = append(args, "-config", path)
		}
		if *dryRun {
			args = append(args, "-dry-run")
		}
		if err := autostart.Enable(args...); err != nil {
			log.Printf("Failed to enable start at login: %v", err)
		}
	}
	item.SetChecked(autostart.IsEnabled())
}

// trayObserver mirrors activation changes in the tray.
type trayObserver struct {
	tray   *tray.Tray
	status *tray.Item
}

func (o *trayObserver) OnBatch(uint64, []input.Event) {}

func (o *trayObserver) OnStatus(st bridge.Status) {
	o.status.SetTitle(statusTitle(st))
	o.status.SetChecked(st.Active)
	o.tray.SetActive(st.Active)
}

func statusTitle(st bridge.Status) string {
	state := "off"
	if st.Active {
		state = "on"
	}
	if st.Mode == activation.AlwaysDisabled {
		state = "disabled"
	}
	return fmt.Sprintf("Mouse simulation: %s (%s)", state, st.Mode)
}
