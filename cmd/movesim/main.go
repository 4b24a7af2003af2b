package main

import (
	"flag"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/gamemove/event"
	"github.com/oomph-ac/gamemove/scenario"
	"github.com/oomph-ac/gamemove/session"
	"github.com/oomph-ac/gamemove/settings"
	"github.com/sirupsen/logrus"
)

// The following program runs a scenario through an authoritative and a predicting context and
// reports every tick the prediction got wrong.
func main() {
	settingsPath := flag.String("settings", "settings.toml", "path of the settings file, created with defaults if missing")
	scenarioPath := flag.String("scenario", "", "path of the TOML or YAML scenario to run")
	recordPath := flag.String("record", "", "write a compressed tick recording to this path")
	replayPath := flag.String("replay", "", "print the summary of a recording instead of running a scenario")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	if *replayPath != "" {
		summarise(logger, *replayPath)
		return
	}
	if *scenarioPath == "" {
		logger.Fatal("no scenario given, use -scenario <file>")
	}

	if _, err := os.Stat(*settingsPath); os.IsNotExist(err) {
		if err := settings.SaveDefault(*settingsPath); err != nil {
			logger.Fatalf("unable to save default settings: %v", err)
		}
		logger.Infof("default settings written to %s", *settingsPath)
	}
	s, err := settings.Load(*settingsPath)
	if err != nil {
		logger.Fatal(err)
	}
	if lvl, err := logrus.ParseLevel(s.Log.Level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warnf("unknown log level %q", s.Log.Level)
	}
	if *recordPath != "" {
		s.Session.RecordPath = *recordPath
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}
	if s.Session.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Session.SentryDSN}); err != nil {
			logger.Fatalf("unable to initialise sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		logger.Fatal(err)
	}
	if sc.TickRate > 0 {
		s.Session.TickRate = sc.TickRate
	}
	serverWorld, clientWorld, err := sc.Worlds()
	if err != nil {
		logger.Fatal(err)
	}

	var sess *session.Session
	if clientWorld == nil {
		sess, err = session.New(s, serverWorld, nil, sc.InitialState(), logger)
	} else {
		sess, err = session.New(s, serverWorld, clientWorld, sc.InitialState(), logger)
	}
	if err != nil {
		logger.Fatal(err)
	}

	start := time.Now()
	report, err := sess.Run(sc.Commands(s.Session.TickRate))
	if err != nil {
		logger.Fatal(err)
	}
	logger.WithFields(report.Fields()).Infof("finished %q in %s", sc.Name, time.Since(start))
}

func summarise(logger *logrus.Logger, path string) {
	rec, err := session.ReadRecording(path)
	if err != nil {
		logger.Fatal(err)
	}
	counts := map[byte]int{}
	for _, ev := range rec.Events {
		counts[ev.ID()]++
	}
	logger.WithFields(logrus.Fields{
		"version":     rec.Version,
		"events":      len(rec.Events),
		"ticks":       counts[event.EventIDTick],
		"divergences": counts[event.EventIDDivergence],
	}).Infof("recording %s", path)
}
