package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/progress"
	"tableflip.dev/kioku/pkg/state"
)

// Persistence defines the persistence contract for study collections:
// the cards themselves, the per-collection view state, and the
// learned/focus progress books.
type Persistence interface {
	MapAll(ctx context.Context) map[string][]card.Card
	List(ctx context.Context, collection string) []card.Card
	Collections(ctx context.Context, prefix string) []string
	CollectionsMeta(ctx context.Context, prefix string) []collection.Meta
	Meta(ctx context.Context, name string) (collection.Meta, bool)
	Import(doc *collection.Document) error
	Append(collection string, c card.Card) error
	SetCollectionCategory(name string, cat collection.Category) error
	State(name string) (state.State, error)
	SetState(name string, st state.State) error
	Progress(kind progress.Kind) (*progress.Book, error)
	SaveProgress(book *progress.Book) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (card.Card, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	var c card.Card
	if err := json.Unmarshal(val, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *persistence) MapAll(ctx context.Context) map[string][]card.Card {
	keys := make(map[string][]string)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		ck := fromCollection(pk.Path[0])
		if ck == "" {
			continue // index dotfiles at the store root
		}
		keys[ck] = append(keys[ck], key)
	}
	all := make(map[string][]card.Card, len(keys))
	for ck, collectionKeys := range keys {
		all[ck] = p.readOrdered(collectionKeys)
	}
	return all
}

func (p *persistence) List(ctx context.Context, name string) []card.Card {
	ck := toCollection(name)
	keys := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); pk.Path[0] == ck {
			keys = append(keys, key)
		}
	}
	return p.readOrdered(keys)
}

// readOrdered reads cards for the given keys in key order. Card keys
// embed the zero-padded document position, so sorting restores the
// authored order regardless of filesystem iteration order.
func (p *persistence) readOrdered(keys []string) []card.Card {
	sort.Strings(keys)
	cards := make([]card.Card, 0, len(keys))
	for _, key := range keys {
		c, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		cards = append(cards, c)
	}
	return cards
}

// Import replaces the stored cards for doc's collection with the
// document's cards, preserving their order, and records the
// collection's category in the index.
func (p *persistence) Import(doc *collection.Document) error {
	if doc == nil || strings.TrimSpace(doc.Name) == "" {
		return errors.New("store: document with a name required")
	}
	if err := p.ensureCollection(doc.Name, doc.Category); err != nil {
		return err
	}
	ck := toCollection(doc.Name)
	stale := make([]string, 0)
	for key := range p.d.Keys(nil) {
		if pk := keyToPathTransform(key); pk.Path[0] == ck {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		if err := p.d.Erase(key); err != nil {
			return fmt.Errorf("store: clear %s: %w", doc.Name, err)
		}
	}
	for i, c := range doc.Cards {
		if err := p.write(doc.Name, i, c); err != nil {
			return err
		}
	}
	return nil
}

// Append stores one card at the end of the collection, creating the
// collection on first use.
func (p *persistence) Append(name string, c card.Card) error {
	if err := p.ensureCollection(name, ""); err != nil {
		return err
	}
	return p.write(name, len(p.List(context.Background(), name)), c)
}

func (p *persistence) write(name string, position int, c card.Card) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("store: marshal card %d of %s: %w", position, name, err)
	}
	return p.d.Write(toKey(name, position), data)
}

func (p *persistence) Collections(ctx context.Context, prefix string) []string {
	metas := p.CollectionsMeta(ctx, prefix)
	names := make([]string, len(metas))
	for i, meta := range metas {
		names[i] = meta.Name
	}
	return names
}

func (p *persistence) CollectionsMeta(ctx context.Context, prefix string) []collection.Meta {
	all := make(map[string]collection.Meta)
	if idx, err := p.loadCollectionsIndex(); err == nil {
		for name, meta := range idx {
			all[name] = meta
		}
	} else {
		fmt.Fprintf(os.Stderr, "store: load collections index: %v\n", err)
	}

	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		ck := fromCollection(pk.Path[0])
		if ck == "" {
			continue
		}

		meta, ok := all[ck]
		if !ok {
			meta = collection.Meta{Name: ck, Category: collection.CategoryGeneric}
		}
		if meta.Name == "" {
			meta.Name = ck
		}
		if meta.Category == "" {
			meta.Category = collection.CategoryGeneric
		}
		all[ck] = meta
	}

	list := make([]collection.Meta, 0, len(all))
	for name, meta := range all {
		if prefix == "" || strings.HasPrefix(name, prefix) {
			list = append(list, meta)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func (p *persistence) Meta(ctx context.Context, name string) (collection.Meta, bool) {
	for _, meta := range p.CollectionsMeta(ctx, "") {
		if meta.Name == name {
			return meta, true
		}
	}
	return collection.Meta{}, false
}

// ensureCollection creates the collection directory and index entry if
// they do not exist, recording cat when it is non-empty.
func (p *persistence) ensureCollection(name string, cat collection.Category) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: collection name required")
	}
	if p.basePath == "" {
		return errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	encoded := toCollection(name)
	if err := os.MkdirAll(filepath.Join(p.basePath, encoded), 0o755); err != nil {
		return fmt.Errorf("store: ensure collection directory: %w", err)
	}
	index, err := p.loadCollectionsIndex()
	if err != nil {
		return fmt.Errorf("store: load collections index: %w", err)
	}
	meta := index[name]
	if meta.Name == "" {
		meta.Name = name
	}
	if cat != "" {
		meta.Category = cat
	}
	if meta.Category == "" {
		meta.Category = collection.CategoryGeneric
	}
	index[name] = meta
	if err := p.saveCollectionsIndex(index); err != nil {
		return fmt.Errorf("store: save collections index: %w", err)
	}
	return nil
}

func (p *persistence) SetCollectionCategory(name string, cat collection.Category) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: collection name required")
	}
	index, err := p.loadCollectionsIndex()
	if err != nil {
		return fmt.Errorf("store: load collections index: %w", err)
	}
	meta := index[name]
	meta.Name = name
	meta.Category = cat
	index[name] = meta
	if err := p.saveCollectionsIndex(index); err != nil {
		return fmt.Errorf("store: save collections index: %w", err)
	}
	return nil
}

const (
	collectionsIndexFile = ".collections.json"
	stateFile            = ".state.json"
	progressFile         = ".progress.json"
)

func (p *persistence) loadCollectionsIndex() (map[string]collection.Meta, error) {
	data, err := p.readIndexFile(collectionsIndexFile)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return make(map[string]collection.Meta), nil
	}
	list, err := collection.UnmarshalList(data)
	if err != nil {
		return nil, err
	}
	index := make(map[string]collection.Meta, len(list))
	for _, meta := range list {
		name := strings.TrimSpace(meta.Name)
		if name == "" {
			continue
		}
		if meta.Category == "" {
			meta.Category = collection.CategoryGeneric
		}
		meta.Name = name
		index[name] = meta
	}
	return index, nil
}

func (p *persistence) saveCollectionsIndex(idx map[string]collection.Meta) error {
	list := make([]collection.Meta, 0, len(idx))
	for name, meta := range idx {
		if meta.Name == "" {
			meta.Name = name
		}
		if meta.Category == "" {
			meta.Category = collection.CategoryGeneric
		}
		list = append(list, meta)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	data, err := collection.MarshalList(list)
	if err != nil {
		return err
	}
	return p.writeIndexFile(collectionsIndexFile, data)
}

// State returns the persisted view state for a collection, or the zero
// state the first time a collection is opened.
func (p *persistence) State(name string) (state.State, error) {
	states, err := p.loadStates()
	if err != nil {
		return state.State{}, fmt.Errorf("store: load view state: %w", err)
	}
	st := states[name]
	st.Normalize()
	return st, nil
}

// SetState persists the view state for a collection.
func (p *persistence) SetState(name string, st state.State) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("store: collection name required")
	}
	states, err := p.loadStates()
	if err != nil {
		return fmt.Errorf("store: load view state: %w", err)
	}
	st.Normalize()
	states[name] = st
	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return err
	}
	return p.writeIndexFile(stateFile, data)
}

func (p *persistence) loadStates() (map[string]state.State, error) {
	data, err := p.readIndexFile(stateFile)
	if err != nil {
		return nil, err
	}
	states := make(map[string]state.State)
	if len(data) == 0 {
		return states, nil
	}
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// Progress returns the progress book for a tracker kind, restoring any
// persisted learned/focus tags.
func (p *persistence) Progress(kind progress.Kind) (*progress.Book, error) {
	var book *progress.Book
	switch kind {
	case progress.KindVocabulary:
		book = progress.NewVocabularyBook()
	case progress.KindGrammar:
		book = progress.NewGrammarBook()
	default:
		return nil, fmt.Errorf("store: unknown progress kind %q", kind)
	}
	records, err := p.loadProgress()
	if err != nil {
		return nil, fmt.Errorf("store: load progress: %w", err)
	}
	if rec, ok := records[kind]; ok {
		book.Restore(rec)
	}
	return book, nil
}

// SaveProgress persists the book's tags under its kind.
func (p *persistence) SaveProgress(book *progress.Book) error {
	if book == nil {
		return errors.New("store: progress book required")
	}
	records, err := p.loadProgress()
	if err != nil {
		return fmt.Errorf("store: load progress: %w", err)
	}
	records[book.Kind()] = book.Record()
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return p.writeIndexFile(progressFile, data)
}

func (p *persistence) loadProgress() (map[progress.Kind]progress.Record, error) {
	data, err := p.readIndexFile(progressFile)
	if err != nil {
		return nil, err
	}
	records := make(map[progress.Kind]progress.Record)
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// readIndexFile reads a dotfile at the store root. A missing file reads
// as empty.
func (p *persistence) readIndexFile(name string) ([]byte, error) {
	if p.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(p.basePath, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// writeIndexFile writes a dotfile at the store root atomically.
func (p *persistence) writeIndexFile(name string, data []byte) error {
	if p.basePath == "" {
		return errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return err
	}
	path := filepath.Join(p.basePath, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `collection-position`
func toKey(name string, position int) string {
	return fmt.Sprintf("%s-%06d", toCollection(name), position)
}

// toCollection encodes a collection name into a directory-safe token.
// Hex keeps the token clear of the '-' key separator and of path
// characters, whatever the collection is called.
func toCollection(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromCollection(s string) string {
	name, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromCollection: %s", err)
	}
	return string(name)
}
