package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/madrasbay/auctionhall/internal/auction"
	"github.com/madrasbay/auctionhall/internal/config"
	"github.com/madrasbay/auctionhall/internal/export"
	"github.com/madrasbay/auctionhall/internal/feed"
	"github.com/madrasbay/auctionhall/internal/logger"
	"github.com/madrasbay/auctionhall/internal/models"
	"github.com/madrasbay/auctionhall/internal/qualify"
	"github.com/madrasbay/auctionhall/internal/scout"
	"github.com/madrasbay/auctionhall/internal/search"
	"github.com/madrasbay/auctionhall/internal/seed"
	"github.com/madrasbay/auctionhall/internal/settle"
	"github.com/madrasbay/auctionhall/internal/storage"
	"github.com/madrasbay/auctionhall/internal/telegram"
)

// console drives the auction from a line-oriented operator prompt. Every
// command runs to completion before the next is read; the only concurrency is
// the fire-and-forget scouting fetch, which tags its response with the lot's
// athlete ID so a stale report for an abandoned lot is dropped.
type console struct {
	cfg       *config.Config
	store     *storage.Store
	session   *auction.Session
	evaluator *qualify.Evaluator
	feed      *feed.Client
	scout     *scout.Client
	telegram  *telegram.Client
	out       io.Writer

	mu        sync.Mutex
	openLotID string
}

func (c *console) run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	c.printf("Type 'help' for commands.\n")
	c.prompt()
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if c.dispatch(ctx, line) {
				return
			}
			c.prompt()
		}
	}
}

// dispatch executes one command line; it returns true to quit.
func (c *console) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		c.printHelp()
	case "list":
		c.cmdList()
	case "find":
		c.cmdFind(args)
	case "squads":
		c.cmdSquads()
	case "start":
		c.cmdStart(ctx, args)
	case "bid":
		c.cmdBid(args)
	case "price":
		c.cmdPrice(args)
	case "sold":
		c.cmdSold()
	case "skip":
		c.cmdSkip()
	case "edit":
		c.cmdEdit(args)
	case "trade":
		c.cmdTrade(args)
	case "sync":
		c.cmdSync(ctx)
	case "export":
		c.cmdExport(args)
	case "reset":
		c.cmdReset()
	case "quit", "exit":
		return true
	default:
		c.printf("Unknown command %q. Type 'help' for commands.\n", cmd)
	}
	return false
}

func (c *console) printHelp() {
	c.printf(`Commands:
  list                          available athletes in the pool
  find <name>                   fuzzy-search the pool by athlete name
  squads                        franchise purses, rosters, qualification
  start [id|name]               open a lot (random athlete when omitted)
  bid <franchise>               place a bid for a franchise
  price <amount>                override the staged final sale price
  sold                          hammer down at the staged price
  skip                          return the lot to the pool unsold
  edit <athlete> <price>        correct a sold athlete's price
  trade <athlete> <franchise>   move a sold athlete to another franchise
  sync                          refresh the pool from the athlete feed
  export registry|report <path> write a CSV export
  reset                         wipe acquisitions, restore seed purses
  quit                          save and exit
`)
}

func (c *console) cmdList() {
	athletes := c.store.Athletes()
	available := 0
	for i := range athletes {
		a := &athletes[i]
		if a.IsSold {
			continue
		}
		available++
		c.printf("  %-8s %-22s %-12s %-14s base %d, rating %d\n",
			a.ID, a.Name, a.Role, a.Country, a.BasePrice, a.Rating)
	}
	c.printf("%d athletes available\n", available)
}

func (c *console) cmdFind(args []string) {
	if len(args) == 0 {
		c.printf("Usage: find <name>\n")
		return
	}
	query := strings.Join(args, " ")
	matches := search.RankByName(query, c.store.Athletes(), 5)
	if len(matches) == 0 {
		c.printf("No athletes matching %q.\n", query)
		return
	}
	for _, m := range matches {
		status := "available"
		if m.Athlete.IsSold {
			status = fmt.Sprintf("sold to %s for %d", m.Athlete.TeamID, m.Athlete.SoldPrice)
		}
		c.printf("  %-8s %-22s %-12s %s\n", m.Athlete.ID, m.Athlete.Name, m.Athlete.Role, status)
	}
}

func (c *console) cmdSquads() {
	franchises := c.store.Franchises()
	for i := range franchises {
		f := &franchises[i]
		r := c.evaluator.Evaluate(f)
		keeper := "needs keeper"
		if r.HasKeeper {
			keeper = "keeper ok"
		}
		c.printf("%-24s purse %-5d squad %2d/%d  %-12s (%s)\n",
			f.Name, f.Budget, r.RosterSize, c.cfg.Auction.MinSquadSize, r.Status, keeper)
		for j := range f.Roster {
			a := &f.Roster[j]
			c.printf("    %-22s %-12s %d\n", a.Name, a.Role, a.SoldPrice)
		}
	}
}

func (c *console) cmdStart(ctx context.Context, args []string) {
	athletes := c.store.Athletes()

	var lot models.Athlete
	if len(args) == 0 {
		var pool []models.Athlete
		for i := range athletes {
			if !athletes[i].IsSold {
				pool = append(pool, athletes[i])
			}
		}
		if len(pool) == 0 {
			c.printf("No athletes left in the pool.\n")
			return
		}
		lot = pool[rand.Intn(len(pool))]
	} else {
		found, ok := search.FindAthlete(strings.Join(args, " "), athletes)
		if !ok {
			c.printf("No athlete matching %q.\n", strings.Join(args, " "))
			return
		}
		lot = found
	}

	if err := c.session.Start(lot); err != nil {
		c.printf("Cannot open lot: %v\n", err)
		return
	}
	c.setOpenLot(lot.ID)
	c.printf("Lot open: %s (%s, %s) — bidding starts at %d\n",
		lot.Name, lot.Role, lot.Country, c.session.CurrentBid())

	if c.scout != nil {
		go c.fetchScoutReport(ctx, lot)
	}
}

// fetchScoutReport runs off the command loop; the report is dropped when the
// lot has changed by the time it lands.
func (c *console) fetchScoutReport(ctx context.Context, lot models.Athlete) {
	report := c.scout.Report(ctx, &lot, c.store.Franchises())
	c.mu.Lock()
	current := c.openLotID
	c.mu.Unlock()
	if current != lot.ID {
		logger.Debug("Discarding stale scouting report for %s", lot.ID)
		return
	}
	c.printf("\nScouting desk on %s: %s\n", lot.Name, report)
	c.prompt()
}

func (c *console) cmdBid(args []string) {
	if len(args) == 0 {
		c.printf("Usage: bid <franchise>\n")
		return
	}
	franchises := c.store.Franchises()
	f, ok := findFranchise(strings.Join(args, " "), franchises)
	if !ok {
		c.printf("No franchise matching %q.\n", strings.Join(args, " "))
		return
	}

	if err := c.session.PlaceBid(f.ID, franchises); err != nil {
		c.printf("Bid rejected: %v\n", err)
		return
	}
	c.printf("%s leads at %d (next required: %d)\n", f.Name, c.session.CurrentBid(), c.session.NextRequired())
}

func (c *console) cmdPrice(args []string) {
	if len(args) != 1 {
		c.printf("Usage: price <amount>\n")
		return
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		c.printf("Invalid amount %q.\n", args[0])
		return
	}
	if err := c.session.SetConfirmPrice(amount); err != nil {
		c.printf("Cannot stage price: %v\n", err)
		return
	}
	c.printf("Final sale price staged at %d.\n", amount)
}

func (c *console) cmdSold() {
	franchises := c.store.Franchises()
	event, err := c.session.Finalize(franchises)
	if err != nil {
		c.printf("Cannot finalize: %v\n", err)
		return
	}
	c.setOpenLot("")

	state, err := settle.ApplySale(c.store.Snapshot(), event.AthleteID, event.FranchiseID, event.Price)
	if err != nil {
		c.printf("Settlement rejected the sale: %v\n", err)
		return
	}
	c.store.Commit(state)
	c.persist()

	athlete, _ := c.store.Athlete(event.AthleteID)
	franchise, _ := c.store.Franchise(event.FranchiseID)
	c.printf("SOLD: %s to %s for %d (purse left %d)\n",
		athlete.Name, franchise.Name, event.Price, franchise.Budget)
	logger.Info("Sale settled: athlete=%s franchise=%s price=%d", event.AthleteID, event.FranchiseID, event.Price)

	if c.telegram != nil {
		if err := c.telegram.AnnounceSale(&athlete, &franchise, event.Price); err != nil {
			logger.Warn("Telegram announcement failed: %v", err)
		}
	}
}

func (c *console) cmdSkip() {
	if err := c.session.Skip(); err != nil {
		c.printf("Nothing to skip: %v\n", err)
		return
	}
	c.setOpenLot("")
	c.printf("Lot skipped; athlete returns to the pool.\n")
}

func (c *console) cmdEdit(args []string) {
	if len(args) < 2 {
		c.printf("Usage: edit <athlete> <price>\n")
		return
	}
	newPrice, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		c.printf("Invalid price %q.\n", args[len(args)-1])
		return
	}
	athlete, ok := search.FindAthlete(strings.Join(args[:len(args)-1], " "), c.store.Athletes())
	if !ok {
		c.printf("No athlete matching %q.\n", strings.Join(args[:len(args)-1], " "))
		return
	}

	state, err := settle.ApplyPriceEdit(c.store.Snapshot(), athlete.ID, newPrice)
	if err != nil {
		if errors.Is(err, settle.ErrInsufficientFunds) {
			c.printf("PURSE LIMIT REACHED: the owning franchise cannot absorb that raise.\n")
		} else {
			c.printf("Price edit rejected: %v\n", err)
		}
		return
	}
	c.store.Commit(state)
	c.persist()
	c.printf("%s re-priced to %d.\n", athlete.Name, newPrice)
	logger.Info("Price edit settled: athlete=%s price=%d", athlete.ID, newPrice)
}

func (c *console) cmdTrade(args []string) {
	if len(args) < 2 {
		c.printf("Usage: trade <athlete> <franchise>\n")
		return
	}
	franchises := c.store.Franchises()
	target, ok := findFranchise(args[len(args)-1], franchises)
	if !ok {
		c.printf("No franchise matching %q.\n", args[len(args)-1])
		return
	}
	athlete, ok := search.FindAthlete(strings.Join(args[:len(args)-1], " "), c.store.Athletes())
	if !ok {
		c.printf("No athlete matching %q.\n", strings.Join(args[:len(args)-1], " "))
		return
	}
	source, _ := c.store.Franchise(athlete.TeamID)

	state, err := settle.ApplyTrade(c.store.Snapshot(), athlete.ID, target.ID)
	if err != nil {
		c.printf("Trade rejected: %v\n", err)
		return
	}
	c.store.Commit(state)
	c.persist()

	traded, _ := c.store.Athlete(athlete.ID)
	c.printf("%s moves from %s to %s at %d.\n", traded.Name, source.Name, target.Name, traded.SoldPrice)
	logger.Info("Trade settled: athlete=%s from=%s to=%s price=%d", traded.ID, source.ID, target.ID, traded.SoldPrice)

	if c.telegram != nil {
		updatedTarget, _ := c.store.Franchise(target.ID)
		if err := c.telegram.AnnounceTrade(&traded, &source, &updatedTarget); err != nil {
			logger.Warn("Telegram announcement failed: %v", err)
		}
	}
}

func (c *console) cmdSync(ctx context.Context) {
	c.printf("Fetching season %s athlete records...\n", c.cfg.Feed.Season)
	records, err := c.feed.FetchAthletes(ctx)
	if err != nil {
		c.printf("Sync failed, pool unchanged: %v\n", err)
		return
	}

	state := c.store.Snapshot()
	before := len(state.Athletes)
	state.Athletes = feed.Merge(state.Athletes, records, c.cfg.Auction.OpeningBid)
	c.store.Commit(state)
	c.persist()
	c.printf("Pool refreshed: %d records fetched, pool %d -> %d (sold athletes untouched).\n",
		len(records), before, len(state.Athletes))
	logger.Info("Feed sync merged %d records", len(records))
}

func (c *console) cmdExport(args []string) {
	if len(args) != 2 {
		c.printf("Usage: export registry|report <path>\n")
		return
	}
	kind, path := args[0], args[1]

	f, err := os.Create(path)
	if err != nil {
		c.printf("Cannot create %s: %v\n", path, err)
		return
	}
	defer f.Close()

	switch kind {
	case "registry":
		err = export.Registry(f, c.store.Athletes())
	case "report":
		err = export.SoldReport(f, c.store.Athletes(), c.store.Franchises())
	default:
		c.printf("Unknown export %q (use registry or report).\n", kind)
		return
	}
	if err != nil {
		c.printf("Export failed: %v\n", err)
		return
	}
	c.printf("Wrote %s export to %s.\n", kind, path)
}

func (c *console) cmdReset() {
	if c.session.Open() {
		_ = c.session.Skip()
		c.setOpenLot("")
	}
	state := settle.Reset(c.store.Snapshot(), seed.Franchises())
	c.store.Commit(state)
	c.persist()
	c.printf("System reset: all athletes unsold, purses restored to %d.\n", seed.InitialBudget)
	logger.Info("System reset applied")

	if c.telegram != nil {
		if err := c.telegram.AnnounceReset(); err != nil {
			logger.Warn("Telegram announcement failed: %v", err)
		}
	}
}

// persist writes the durable records after a mutation. A failed save is logged
// and retried on the next mutation; it never rolls back the in-memory state.
func (c *console) persist() {
	if err := c.store.Save(); err != nil {
		logger.Warn("Persistence failed (state kept in memory): %v", err)
	}
}

func (c *console) setOpenLot(id string) {
	c.mu.Lock()
	c.openLotID = id
	c.mu.Unlock()
}

func (c *console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) prompt() {
	if c.session.Open() {
		fmt.Fprintf(c.out, "[lot %s | bid %d | leader %s] > ",
			c.session.Athlete().Name, c.session.CurrentBid(), leaderLabel(c.session))
		return
	}
	fmt.Fprint(c.out, "> ")
}

func leaderLabel(s *auction.Session) string {
	if s.LeaderID() == "" {
		return "none"
	}
	return s.LeaderID()
}

// findFranchise resolves a franchise by exact ID, then case-insensitive name
// or unique name prefix.
func findFranchise(query string, franchises []models.Franchise) (models.Franchise, bool) {
	for i := range franchises {
		if franchises[i].ID == query {
			return franchises[i].Clone(), true
		}
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.Franchise{}, false
	}
	match := -1
	for i := range franchises {
		name := strings.ToLower(franchises[i].Name)
		if name == q {
			return franchises[i].Clone(), true
		}
		if strings.HasPrefix(name, q) {
			if match >= 0 {
				return models.Franchise{}, false // ambiguous prefix
			}
			match = i
		}
	}
	if match < 0 {
		return models.Franchise{}, false
	}
	return franchises[match].Clone(), true
}
