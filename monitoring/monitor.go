// Package monitoring serves a small web page that mirrors the board while the
// controller runs.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/grid"
	"github.com/sarchlab/lifeboard/hooking"
	"github.com/sarchlab/lifeboard/monitoring/web"
	"github.com/sarchlab/lifeboard/timing"
)

// Pausable is something the monitor can pause and continue, such as the
// real-time loop or the virtual-time engine.
type Pausable interface {
	Pause()
	Continue()
}

// Monitor is a hook that keeps the latest tick report of a controller and
// serves it over HTTP.
type Monitor struct {
	lock      sync.Mutex
	latest    controller.TickReport
	hasReport bool
	actions   [controller.NumActions]uint64
	target    Pausable
	paused    bool

	virtualTime    timing.VTimeInSec
	hasVirtualTime bool

	portNumber int
	url        string

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterPausable sets what the pause and continue endpoints act on.
func (m *Monitor) RegisterPausable(p Pausable) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.target = p
}

// Func keeps a copy of every tick report. Hooked to a timing engine, it also
// follows the virtual time.
func (m *Monitor) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case controller.HookPosAfterTick:
		m.recordTick(ctx.Item.(controller.TickReport))
	case timing.HookPosAfterEvent:
		m.recordTime(ctx.Item.(timing.Event).Time())
	}
}

func (m *Monitor) recordTime(t timing.VTimeInSec) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.virtualTime = t
	m.hasVirtualTime = true
}

func (m *Monitor) recordTick(rep controller.TickReport) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.latest = rep
	m.hasReport = true

	if rep.Action >= 0 && int(rep.Action) < len(m.actions) {
		m.actions[rep.Action]++
	}
}

// Latest returns the most recent report and whether there is one.
func (m *Monitor) Latest() (controller.TickReport, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.latest, m.hasReport
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the router that serves the monitor API and the web page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/board", m.board).Methods(http.MethodGet)
	r.HandleFunc("/api/now", m.now).Methods(http.MethodGet)
	r.HandleFunc("/api/pause", m.pause)
	r.HandleFunc("/api/continue", m.resume)
	r.HandleFunc("/api/status", m.status).Methods(http.MethodGet)
	r.HandleFunc("/api/status/{field}", m.status).Methods(http.MethodGet)
	r.HandleFunc("/api/progress", m.listProgressBars).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server in the background.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring lifeboard with %s\n", m.url)

	go func() {
		err := http.Serve(listener, m.Handler())
		dieOnErr(err)
	}()
}

// URL returns the address of the running server, or "" before StartServer.
func (m *Monitor) URL() string {
	return m.url
}

type boardRsp struct {
	Tick          uint64   `json:"tick"`
	Action        string   `json:"action"`
	Bits          uint32   `json:"bits"`
	Rows          []string `json:"rows"`
	ButtonA       bool     `json:"button_a"`
	ButtonB       bool     `json:"button_b"`
	Cooldown      int      `json:"cooldown"`
	DeadCountdown int      `json:"dead_countdown"`
	Paused        bool     `json:"paused"`
}

func (m *Monitor) board(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	rep, ok, paused := m.latest, m.hasReport, m.paused
	m.lock.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, boardRsp{
		Tick:          rep.Tick,
		Action:        rep.Action.String(),
		Bits:          rep.Board.Bits(),
		Rows:          strings.Split(rep.Board.String(), "\n"),
		ButtonA:       rep.Buttons.A,
		ButtonB:       rep.Buttons.B,
		Cooldown:      rep.Cooldown,
		DeadCountdown: rep.DeadCountdown,
		Paused:        paused,
	})
}

type nowRsp struct {
	Tick        uint64   `json:"now"`
	VirtualTime *float64 `json:"virtual_time,omitempty"`
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	rsp := nowRsp{Tick: m.latest.Tick}
	if m.hasVirtualTime {
		t := float64(m.virtualTime)
		rsp.VirtualTime = &t
	}
	m.lock.Unlock()

	writeJSON(w, rsp)
}

func (m *Monitor) pause(w http.ResponseWriter, _ *http.Request) {
	m.setPaused(w, true)
}

func (m *Monitor) resume(w http.ResponseWriter, _ *http.Request) {
	m.setPaused(w, false)
}

func (m *Monitor) setPaused(w http.ResponseWriter, paused bool) {
	m.lock.Lock()
	target := m.target
	m.lock.Unlock()

	if target == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Nothing to pause"))
		dieOnErr(err)

		return
	}

	if paused {
		target.Pause()
	} else {
		target.Continue()
	}

	m.lock.Lock()
	m.paused = paused
	m.lock.Unlock()

	_, err := w.Write(nil)
	dieOnErr(err)
}

// Status is the snapshot served by /api/status.
type Status struct {
	Tick          uint64
	Action        string
	Board         []string
	Population    int
	Cooldown      int
	DeadCountdown int
	Paused        bool
	VirtualTime   float64
	Actions       []ActionCount
}

// ActionCount is how many ticks took one action.
type ActionCount struct {
	Action string
	Count  uint64
}

func (m *Monitor) snapshotStatus() *Status {
	m.lock.Lock()
	defer m.lock.Unlock()

	s := &Status{
		Tick:          m.latest.Tick,
		Action:        m.latest.Action.String(),
		Board:         strings.Split(m.latest.Board.String(), "\n"),
		Population:    m.latest.Board.Population(),
		Cooldown:      m.latest.Cooldown,
		DeadCountdown: m.latest.DeadCountdown,
		Paused:        m.paused,
		VirtualTime:   float64(m.virtualTime),
	}

	if !m.hasReport {
		s.Action = ""
		s.Board = strings.Split(grid.Board{}.String(), "\n")
	}

	for _, a := range controller.Actions() {
		s.Actions = append(s.Actions, ActionCount{
			Action: a.String(),
			Count:  m.actions[a],
		})
	}

	return s
}

func (m *Monitor) status(w http.ResponseWriter, r *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.snapshotStatus())
	serializer.SetMaxDepth(2)

	if field, ok := mux.Vars(r)["field"]; ok {
		err := serializer.SetEntryPoint(strings.Split(field, "."))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, "Error: %s", err)

			return
		}
	}

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressBarRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
