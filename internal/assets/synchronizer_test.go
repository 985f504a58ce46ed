package assets_test

import (
	"context"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"ssmt/internal/assets"
	"ssmt/internal/catalog"
	"ssmt/internal/gameconfig"
	"ssmt/internal/history"
	"ssmt/internal/services"
	"ssmt/internal/testsupport"
)

type fixture struct {
	root    string
	configs *gameconfig.Store
	history *history.Store
	sync    *assets.Synchronizer
}

func newFixture(t *testing.T, catalogURL string) fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogURL(catalogURL), testsupport.WithIconMaxSize(64))
	root := cfg.GlobalGamesDir()
	configs := gameconfig.NewStore(root, nil)
	hist := testsupport.MustOpenHistory(t, cfg)

	opts := []assets.Option{assets.WithRecorder(hist), assets.WithIconMaxSize(cfg.Assets.IconMaxSize)}
	if catalogURL != "" {
		client, err := catalog.NewClient(catalog.Config{
			BaseURL:        catalogURL,
			LauncherID:     cfg.Catalog.LauncherID,
			Language:       cfg.Catalog.Language,
			TimeoutSeconds: 5,
		})
		if err != nil {
			t.Fatalf("catalog.NewClient: %v", err)
		}
		opts = append(opts, assets.WithFetcher(client))
	}
	return fixture{root: root, configs: configs, history: hist, sync: assets.NewSynchronizer(configs, nil, opts...)}
}

// addGame creates an empty game directory and returns its path.
func (f fixture) addGame(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(f.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

// snapshot maps file name to content for every file in dir.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, name := range testsupport.ListNames(t, dir) {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			continue
		}
		out[name] = testsupport.ReadText(t, filepath.Join(dir, name))
	}
	return out
}

func backgroundFiles(t *testing.T, dir string) []string {
	t.Helper()
	var names []string
	for _, name := range testsupport.ListNames(t, dir) {
		if strings.HasPrefix(name, "Background.") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func TestSetBackgroundReplacesImageCandidates(t *testing.T) {
	f := newFixture(t, "")
	dir := filepath.Join(f.root, "Genshin")
	for _, name := range []string{"Background.png", "Background.webp", "Background.jpg", "Background.jpeg", "Background.mp4"} {
		testsupport.WriteText(t, filepath.Join(dir, name), "old "+name)
	}
	source := filepath.Join(t.TempDir(), "Wallpaper.WEBP")
	testsupport.WriteText(t, source, "new image")

	outcome, err := f.sync.SetBackground(context.Background(), "Genshin", source, "image")
	if err != nil {
		t.Fatalf("SetBackground: %v", err)
	}
	if got := backgroundFiles(t, dir); !reflect.DeepEqual(got, []string{"Background.mp4", "Background.webp"}) {
		t.Fatalf("unexpected backgrounds %v", got)
	}
	if got := testsupport.ReadText(t, filepath.Join(dir, "Background.webp")); got != "new image" {
		t.Fatalf("unexpected content %q", got)
	}
	if len(outcome.Cleanup.Removed) != 4 || !outcome.Cleanup.Clean() {
		t.Fatalf("unexpected cleanup %+v", outcome.Cleanup)
	}
	cfg, err := f.configs.Load("Genshin")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Basic.BackgroundType != "image" {
		t.Fatalf("expected image background type, got %q", cfg.Basic.BackgroundType)
	}
	for _, name := range testsupport.ListNames(t, dir) {
		if strings.HasSuffix(name, ".tmp") {
			t.Fatalf("staging file left behind: %s", name)
		}
	}
}

func TestSetBackgroundVideoPersistsKind(t *testing.T) {
	f := newFixture(t, "")
	f.addGame(t, "ZZZ")
	source := filepath.Join(t.TempDir(), "loop.mkv")
	testsupport.WriteFile(t, source, 2048)

	outcome, err := f.sync.SetBackground(context.Background(), "ZZZ", source, "video")
	if err != nil {
		t.Fatalf("SetBackground: %v", err)
	}
	if filepath.Base(outcome.Target) != "Background.mkv" || outcome.Bytes != 2048 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	cfg, err := f.configs.Load("ZZZ")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Basic.BackgroundType != "video" {
		t.Fatalf("expected video, got %q", cfg.Basic.BackgroundType)
	}
}

func TestSetBackgroundUnsupportedKindMutatesNothing(t *testing.T) {
	f := newFixture(t, "")
	dir := filepath.Join(f.root, "Genshin")
	testsupport.WriteText(t, filepath.Join(dir, "Background.png"), "keep")
	before := snapshot(t, dir)
	source := filepath.Join(t.TempDir(), "song.mp3")
	testsupport.WriteText(t, source, "audio")

	_, err := f.sync.SetBackground(context.Background(), "Genshin", source, "audio")
	if !errors.Is(err, services.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if after := snapshot(t, dir); !reflect.DeepEqual(before, after) {
		t.Fatalf("filesystem changed: %v -> %v", before, after)
	}
	if _, err := os.Stat(filepath.Join(f.root, "Other")); !os.IsNotExist(err) {
		t.Fatal("unexpected directory creation")
	}
}

func TestSetBackgroundMissingSource(t *testing.T) {
	f := newFixture(t, "")
	f.addGame(t, "Genshin")
	_, err := f.sync.SetBackground(context.Background(), "Genshin", filepath.Join(t.TempDir(), "nope.png"), "image")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetIconNormalizesJPEG(t *testing.T) {
	f := newFixture(t, "")
	dir := filepath.Join(f.root, "Honkai")
	testsupport.WriteText(t, filepath.Join(dir, "Icon.png"), "old icon")
	source := filepath.Join(t.TempDir(), "icon.jpg")
	testsupport.WriteJPEG(t, source, 200, 100)

	outcome, err := f.sync.SetIcon(context.Background(), "Honkai", source)
	if err != nil {
		t.Fatalf("SetIcon: %v", err)
	}
	if !outcome.Normalized || len(outcome.Cleanup.Removed) != 1 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	file, err := os.Open(filepath.Join(dir, "Icon.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Icon.png is not a png: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("expected downscale to 64x32, got %v", img.Bounds())
	}
}

func TestSetIconCopiesUndecodableVerbatim(t *testing.T) {
	f := newFixture(t, "")
	f.addGame(t, "Honkai")
	source := filepath.Join(t.TempDir(), "icon.ico")
	testsupport.WriteText(t, source, "not really an image")

	outcome, err := f.sync.SetIcon(context.Background(), "Honkai", source)
	if err != nil {
		t.Fatalf("SetIcon: %v", err)
	}
	if outcome.Normalized {
		t.Fatal("expected verbatim copy")
	}
	if got := testsupport.ReadText(t, filepath.Join(f.root, "Honkai", "Icon.png")); got != "not really an image" {
		t.Fatalf("unexpected icon content %q", got)
	}
}

func TestHistoryRecordsEachReplacement(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	f.addGame(t, "Genshin")
	img := filepath.Join(t.TempDir(), "a.png")
	testsupport.WritePNG(t, img, 8, 8)

	if _, err := f.sync.SetBackground(ctx, "Genshin", img, "image"); err != nil {
		t.Fatalf("SetBackground: %v", err)
	}
	if _, err := f.sync.SetIcon(ctx, "Genshin", img); err != nil {
		t.Fatalf("SetIcon: %v", err)
	}
	if _, err := f.sync.SetBackground(ctx, "Genshin", img, "audio"); err == nil {
		t.Fatal("expected failure")
	}

	entries, err := f.history.List(ctx, "Genshin", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	kinds := []string{entries[0].Kind, entries[1].Kind}
	sort.Strings(kinds)
	if !reflect.DeepEqual(kinds, []string{history.KindIcon, history.KindImage}) {
		t.Fatalf("unexpected kinds %v", kinds)
	}
}

func catalogServer(t *testing.T, catalogBody string, mediaStatus int) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api":
			_, _ = w.Write([]byte(strings.ReplaceAll(catalogBody, "{{base}}", srv.URL)))
		case "/media/bg.jpg", "/media/loop":
			if mediaStatus != http.StatusOK {
				http.Error(w, "boom", mediaStatus)
				return
			}
			_, _ = w.Write([]byte("remote-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

const remoteBody = `{"data":{"game_info_list":[{"backgrounds":[{"background":{"url":"{{base}}/media/bg.jpg"},"video":{"url":"{{base}}/media/loop"}}]}]}}`

func TestUpdateBackgroundFromRemote(t *testing.T) {
	srv := catalogServer(t, remoteBody, http.StatusOK)
	f := newFixture(t, srv.URL+"/api")
	dir := filepath.Join(f.root, "Genshin")
	testsupport.WriteText(t, filepath.Join(dir, "Background.png"), "old")

	outcome, err := f.sync.UpdateBackgroundFromRemote(context.Background(), "Genshin", "GIMI", "image")
	if err != nil {
		t.Fatalf("UpdateBackgroundFromRemote: %v", err)
	}
	if got := backgroundFiles(t, dir); !reflect.DeepEqual(got, []string{"Background.jpg"}) {
		t.Fatalf("unexpected backgrounds %v", got)
	}
	if outcome.Source != history.SourceRemote || outcome.Bytes != int64(len("remote-bytes")) {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	video, err := f.sync.UpdateBackgroundFromRemote(context.Background(), "Genshin", "GIMI", "video")
	if err != nil {
		t.Fatalf("video update: %v", err)
	}
	if filepath.Base(video.Target) != "Background.mp4" {
		t.Fatalf("expected mp4 fallback extension, got %s", video.Target)
	}
	cfg, err := f.configs.Load("Genshin")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Basic.BackgroundType != "video" {
		t.Fatalf("expected video type, got %q", cfg.Basic.BackgroundType)
	}
}

func TestUpdateBackgroundFromRemoteMediaFailureLeavesFiles(t *testing.T) {
	srv := catalogServer(t, remoteBody, http.StatusInternalServerError)
	f := newFixture(t, srv.URL+"/api")
	dir := filepath.Join(f.root, "Genshin")
	testsupport.WriteText(t, filepath.Join(dir, "Background.png"), "old png")
	testsupport.WriteText(t, filepath.Join(dir, "Background.webp"), "old webp")
	before := snapshot(t, dir)

	_, err := f.sync.UpdateBackgroundFromRemote(context.Background(), "Genshin", "GIMI", "image")
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if after := snapshot(t, dir); !reflect.DeepEqual(before, after) {
		t.Fatalf("backgrounds changed after failed download: %v -> %v", before, after)
	}
}

func TestUpdateBackgroundFromRemoteMissingVideoKey(t *testing.T) {
	srv := catalogServer(t, `{"data":{"game_info_list":[{"backgrounds":[{"background":{"url":"x"}}]}]}}`, http.StatusOK)
	f := newFixture(t, srv.URL+"/api")
	dir := filepath.Join(f.root, "ZZZ")
	testsupport.WriteText(t, filepath.Join(dir, "Background.webm"), "old video")
	before := snapshot(t, dir)

	_, err := f.sync.UpdateBackgroundFromRemote(context.Background(), "ZZZ", "ZZMI", "video")
	if !errors.Is(err, services.ErrParse) || !strings.Contains(err.Error(), "backgrounds[0].video") {
		t.Fatalf("expected ErrParse naming the key path, got %v", err)
	}
	if after := snapshot(t, dir); !reflect.DeepEqual(before, after) {
		t.Fatalf("files changed: %v -> %v", before, after)
	}
}

func TestUpdateBackgroundFromRemoteRejectsPreset(t *testing.T) {
	srv := catalogServer(t, remoteBody, http.StatusOK)
	f := newFixture(t, srv.URL+"/api")
	f.addGame(t, "Genshin")
	if _, err := f.sync.UpdateBackgroundFromRemote(context.Background(), "Genshin", "Default", "image"); !errors.Is(err, services.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestAssetWritesRequireExistingGame(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	f := newFixture(t, srv.URL+"/api")
	img := filepath.Join(t.TempDir(), "a.png")
	testsupport.WritePNG(t, img, 8, 8)
	ctx := context.Background()

	ops := map[string]func() error{
		"background": func() error {
			_, err := f.sync.SetBackground(ctx, "Gensin", img, "image")
			return err
		},
		"icon": func() error {
			_, err := f.sync.SetIcon(ctx, "Gensin", img)
			return err
		},
		"remote": func() error {
			_, err := f.sync.UpdateBackgroundFromRemote(ctx, "Gensin", "GIMI", "image")
			return err
		},
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(f.root, "Gensin")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("game directory should not be created: %v", err)
	}
	if n := requests.Load(); n != 0 {
		t.Fatalf("expected no catalog requests, got %d", n)
	}
}
