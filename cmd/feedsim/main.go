package main

// Synthetic venue feed: connects as a FIX initiator and streams random
// incremental refreshes at the feed handler.

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/fix44/marketdataincrementalrefresh"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/quickfix/log/file"
	"github.com/shopspring/decimal"
)

var venues = []string{
	"CBOE", "ISE", "BOX", "MIAX", "ARCA", "PHLX", "GEM", "EDGX",
	"BAT", "MRX", "BZX", "NDQ", "C2", "AMEX",
}

var symbols = []string{"AAPL", "MSFT", "SPY"}

var letters = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func randSeq(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

type InitiatorApp struct {
	ratePerSec int
}

func (a *InitiatorApp) OnCreate(sessionID quickfix.SessionID) {}

func (a *InitiatorApp) OnLogon(sessionID quickfix.SessionID) {
	log.Println("Logon success")
	go a.sendRandomQuotes(sessionID)
}

func (a *InitiatorApp) OnLogout(sessionID quickfix.SessionID)                       {}
func (a *InitiatorApp) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {}
func (a *InitiatorApp) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return nil
}
func (a *InitiatorApp) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}
func (a *InitiatorApp) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}

func (a *InitiatorApp) sendRandomQuotes(sessionID quickfix.SessionID) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	sent := 0
	for range ticker.C {
		start := time.Now()
		for i := 0; i < a.ratePerSec; i++ {
			msg := marketdataincrementalrefresh.New()

			group := marketdataincrementalrefresh.NewNoMDEntriesRepeatingGroup()
			entry := group.Add()
			entry.SetMDUpdateAction(enum.MDUpdateAction_NEW)
			entryType := enum.MDEntryType_BID
			if rand.Intn(2) == 0 {
				entryType = enum.MDEntryType_OFFER
			}
			entry.SetMDEntryType(entryType)
			entry.SetSymbol(symbols[rand.Intn(len(symbols))])
			entry.SetMDEntryID(randSeq(12))
			entry.SetMDMkt(venues[rand.Intn(len(venues))])
			entry.SetMDEntryPx(decimal.NewFromFloat(100+float64(rand.Intn(1000))/100), 2)
			entry.SetMDEntrySize(decimal.NewFromInt(int64(rand.Intn(100)+1)), 0)
			msg.SetNoMDEntries(group)

			if err := quickfix.SendToTarget(msg, sessionID); err != nil {
				log.Println("send err", err)
			}
			sent++
		}
		fmt.Printf("sent %d quotes, last burst took %s\n", sent, time.Since(start))
	}
}

func main() {
	var cfgFileName string
	var rate int
	flag.StringVar(&cfgFileName, "config-file", "config/feedsim.cfg", "Specify FIX config file path")
	flag.IntVar(&rate, "rate", 250, "quotes per second")
	flag.Parse()

	cfg, err := os.Open(cfgFileName)
	if err != nil {
		log.Fatalf("error opening %v, %v", cfgFileName, err)
	}
	defer cfg.Close() // nolint

	stringData, readErr := io.ReadAll(cfg)
	if readErr != nil {
		log.Fatalf("error reading cfg: %s,", readErr)
	}

	appSettings, err := quickfix.ParseSettings(bytes.NewReader(stringData))
	if err != nil {
		log.Fatalf("error reading cfg: %s,", err)
	}

	app := &InitiatorApp{ratePerSec: rate}
	logFactory, _ := file.NewLogFactory(appSettings)
	initiator, err := quickfix.NewInitiator(app, quickfix.NewMemoryStoreFactory(), appSettings, logFactory)
	if err != nil {
		log.Fatalf("unable to create initiator: %s", err)
	}

	if err = initiator.Start(); err != nil {
		log.Fatalf("unable to start initiator: %s", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	initiator.Stop()
}
