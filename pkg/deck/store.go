package deck

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Fannzxyl/kotoba-test/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
)

var (
	// ErrDeckNotFound 卡组不存在
	ErrDeckNotFound = errors.New("deck not found")
	// ErrCardNotFound 卡片不存在
	ErrCardNotFound = errors.New("card not found")
	// ErrLastDeck 不允许删除最后一个卡组
	ErrLastDeck = errors.New("cannot delete the last deck")
	// ErrInvalidCard 卡片字段校验失败
	ErrInvalidCard = errors.New("invalid card")
)

// 存储路径常量
const (
	decksObject   = "decks"
	metaProperty  = "meta"
	cardsProperty = "cards"
)

// FallbackDeck 无法读取任何卡组时使用的默认卡组
var FallbackDeck = Deck{ID: "default-deck", Name: "Main Deck"}

// snapshot 卡组和卡片的一份完整数据
type snapshot struct {
	decks []Deck
	cards []Card
}

func (sn *snapshot) clone() *snapshot {
	return &snapshot{
		decks: append([]Deck(nil), sn.decks...),
		cards: append([]Card(nil), sn.cards...),
	}
}

func (sn *snapshot) deckIndex(id string) int {
	for i, d := range sn.decks {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (sn *snapshot) cardIndex(id string) int {
	for i, c := range sn.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Store 卡组存储
//
// 职责：
//   - 卡组和卡片的增删改查
//   - 以 YAML 格式通过 gdata 持久化（对象 decks，属性 meta 和 cards）
//   - 首次运行时写入嵌入的默认卡组
//
// 每次修改都在副本上进行，写入存档成功后才替换内存数据；写入失败时内存保持原样。
// gdataManager 为 nil 时进入内存模式。
// Store 不是并发安全的，只在游戏主循环中使用。
type Store struct {
	gdataManager *gdata.Manager
	data         *snapshot
	validate     *validator.Validate
	now          func() time.Time
	persist      func(*snapshot) error
}

// NewStore 创建卡组存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（内存模式）
//   - seeds: 默认卡组 YAML（data/decks/*.yaml），每个文件一个卡组；全部为空时只创建空的默认卡组
//
// 返回：
//   - *Store: 卡组存储
//   - error: 已保存的数据损坏，或默认卡组无法解析、包含无效卡片
func NewStore(gdataManager *gdata.Manager, seeds ...[]byte) (*Store, error) {
	s := &Store{
		gdataManager: gdataManager,
		data:         &snapshot{},
		validate:     validator.New(),
		now:          time.Now,
	}
	s.persist = s.save

	loaded, err := s.load()
	if err != nil {
		return nil, err
	}
	if loaded {
		log.Printf("[DeckStore] Loaded %d decks, %d cards", len(s.data.decks), len(s.data.cards))
		return s, nil
	}

	if err := s.commit(func(tx *snapshot) error { return s.seed(tx, seeds) }); err != nil {
		return nil, err
	}
	log.Printf("[DeckStore] Seeded %d decks with %d cards", len(s.data.decks), len(s.data.cards))
	return s, nil
}

// load 从 gdata 读取卡组和卡片
//
// 返回：
//   - bool: 是否存在已保存的数据
//   - error: 数据存在但无法读取或解析
func (s *Store) load() (bool, error) {
	found, err := storage.LoadYAML(s.gdataManager, decksObject, metaProperty, &s.data.decks)
	if err != nil || !found {
		return false, err
	}
	if _, err := storage.LoadYAML(s.gdataManager, decksObject, cardsProperty, &s.data.cards); err != nil {
		return false, err
	}

	if len(s.data.decks) == 0 {
		s.data.decks = []Deck{FallbackDeck}
	}
	// 没有卡组归属的旧卡片放进第一个卡组
	for i := range s.data.cards {
		if s.data.cards[i].DeckID == "" {
			s.data.cards[i].DeckID = s.data.decks[0].ID
		}
	}
	return true, nil
}

// seed 写入默认卡组
// 卡片和 AddCards 走同样的路径：补全ID、初始化复习进度并校验
func (s *Store) seed(tx *snapshot, seeds [][]byte) error {
	for _, data := range seeds {
		if len(data) == 0 {
			continue
		}
		file, err := parseSeed(data)
		if err != nil {
			return err
		}
		if file.ID == "" {
			return fmt.Errorf("seed deck %q is missing id", file.Name)
		}
		if tx.deckIndex(file.ID) >= 0 {
			log.Printf("[DeckStore] Warning: duplicate seed deck %s skipped", file.ID)
			continue
		}
		tx.decks = append(tx.decks, Deck{ID: file.ID, Name: file.Name})
		if _, err := s.addCards(tx, file.ID, file.Cards); err != nil {
			return fmt.Errorf("seed deck %s: %w", file.ID, err)
		}
	}
	if len(tx.decks) == 0 {
		tx.decks = []Deck{FallbackDeck}
	}
	return nil
}

// save 把卡组和卡片写入 gdata，内存模式下直接返回
func (s *Store) save(sn *snapshot) error {
	if err := storage.SaveYAML(s.gdataManager, decksObject, metaProperty, sn.decks); err != nil {
		return err
	}
	return storage.SaveYAML(s.gdataManager, decksObject, cardsProperty, sn.cards)
}

// commit 在数据副本上执行 fn，写入成功后替换内存数据
func (s *Store) commit(fn func(tx *snapshot) error) error {
	tx := s.data.clone()
	if err := fn(tx); err != nil {
		return err
	}
	if err := s.persist(tx); err != nil {
		return err
	}
	s.data = tx
	return nil
}

// Decks 返回所有卡组（副本）
func (s *Store) Decks() []Deck {
	return append([]Deck(nil), s.data.decks...)
}

// Deck 按ID查找卡组
func (s *Store) Deck(id string) (Deck, bool) {
	i := s.data.deckIndex(id)
	if i < 0 {
		return Deck{}, false
	}
	return s.data.decks[i], true
}

// CreateDeck 创建新卡组
func (s *Store) CreateDeck(name string) (Deck, error) {
	var d Deck
	err := s.commit(func(tx *snapshot) (err error) {
		d, err = s.newDeck(tx, "", name)
		return err
	})
	if err != nil {
		return Deck{}, err
	}
	log.Printf("[DeckStore] Created deck %s (%s)", d.ID, d.Name)
	return d, nil
}

// newDeck 在 tx 中追加卡组，id 为空时生成
func (s *Store) newDeck(tx *snapshot, id, name string) (Deck, error) {
	if id == "" {
		id = "deck_" + uuid.NewString()
	}
	d := Deck{ID: id, Name: strings.TrimSpace(name)}
	if err := s.validate.Struct(d); err != nil {
		return Deck{}, fmt.Errorf("invalid deck: %w", err)
	}
	tx.decks = append(tx.decks, d)
	return d, nil
}

// ImportDeck 从卡组文件（与 data/decks/*.yaml 相同的格式）导入
//
// 文件中的 id 已存在时把新卡片合并进该卡组，否则创建卡组；
// 已存在的卡片ID被跳过，所以重复导入同一个文件不会产生重复卡片。
//
// 返回：
//   - Deck: 导入目标卡组
//   - int: 新增的卡片数
//   - error: 文件无法解析或有卡片校验失败，此时不写入任何内容
func (s *Store) ImportDeck(data []byte) (Deck, int, error) {
	file, err := parseSeed(data)
	if err != nil {
		return Deck{}, 0, err
	}

	var d Deck
	var added int
	err = s.commit(func(tx *snapshot) (err error) {
		if i := tx.deckIndex(file.ID); file.ID != "" && i >= 0 {
			d = tx.decks[i]
		} else if d, err = s.newDeck(tx, file.ID, file.Name); err != nil {
			return err
		}
		added, err = s.addCards(tx, d.ID, file.Cards)
		return err
	})
	if err != nil {
		return Deck{}, 0, fmt.Errorf("import %q: %w", file.Name, err)
	}
	log.Printf("[DeckStore] Imported %d cards into %s (%s)", added, d.ID, d.Name)
	return d, added, nil
}

// RenameDeck 重命名卡组
func (s *Store) RenameDeck(id, name string) error {
	name = strings.TrimSpace(name)
	return s.commit(func(tx *snapshot) error {
		i := tx.deckIndex(id)
		if i < 0 {
			return fmt.Errorf("rename %s: %w", id, ErrDeckNotFound)
		}
		if name == "" {
			return fmt.Errorf("rename %s: deck name is empty", id)
		}
		tx.decks[i].Name = name
		return nil
	})
}

// DeleteDeck 删除卡组
//
// 最后一个卡组不能删除（返回 ErrLastDeck）。
// 被删除卡组中的卡片移动到剩余的第一个卡组，避免数据丢失。
func (s *Store) DeleteDeck(id string) error {
	var fallback string
	moved := 0
	err := s.commit(func(tx *snapshot) error {
		i := tx.deckIndex(id)
		if i < 0 {
			return fmt.Errorf("delete %s: %w", id, ErrDeckNotFound)
		}
		if len(tx.decks) <= 1 {
			return ErrLastDeck
		}
		tx.decks = append(tx.decks[:i], tx.decks[i+1:]...)
		fallback = tx.decks[0].ID
		for j := range tx.cards {
			if tx.cards[j].DeckID == id {
				tx.cards[j].DeckID = fallback
				moved++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[DeckStore] Deleted deck %s, moved %d cards to %s", id, moved, fallback)
	return nil
}

// Cards 返回卡组中的卡片（副本），deckID 为空时返回全部卡片
func (s *Store) Cards(deckID string) []Card {
	var cards []Card
	for _, c := range s.data.cards {
		if deckID == "" || c.DeckID == deckID {
			cards = append(cards, c)
		}
	}
	return cards
}

// AddCards 向卡组添加卡片
//
// 缺少ID的卡片生成新的UUID；ID已存在的卡片被跳过。
// 任何一张卡片校验失败时不写入任何卡片。
//
// 返回：
//   - int: 实际添加的卡片数
//   - error: 卡组不存在或校验失败（errors.Is(err, ErrInvalidCard)）
func (s *Store) AddCards(deckID string, cards []Card) (int, error) {
	var added int
	err := s.commit(func(tx *snapshot) (err error) {
		added, err = s.addCards(tx, deckID, cards)
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Printf("[DeckStore] Added %d cards to %s (%d skipped)", added, deckID, len(cards)-added)
	return added, nil
}

func (s *Store) addCards(tx *snapshot, deckID string, cards []Card) (int, error) {
	if tx.deckIndex(deckID) < 0 {
		return 0, fmt.Errorf("add cards to %s: %w", deckID, ErrDeckNotFound)
	}

	existing := make(map[string]bool, len(tx.cards))
	for _, c := range tx.cards {
		existing[c.ID] = true
	}

	now := s.now()
	added := 0
	for _, c := range cards {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if existing[c.ID] {
			continue
		}
		c.DeckID = deckID
		s.prepareCard(&c, now)
		if err := s.validate.Struct(c); err != nil {
			return 0, fmt.Errorf("%w %s: %v", ErrInvalidCard, c.ID, err)
		}
		existing[c.ID] = true
		tx.cards = append(tx.cards, c)
		added++
	}
	return added, nil
}

// UpdateCard 按ID替换卡片内容
func (s *Store) UpdateCard(card Card) error {
	return s.commit(func(tx *snapshot) error {
		i := tx.cardIndex(card.ID)
		if i < 0 {
			return fmt.Errorf("update %s: %w", card.ID, ErrCardNotFound)
		}
		if card.DeckID == "" {
			card.DeckID = tx.cards[i].DeckID
		}
		if tx.deckIndex(card.DeckID) < 0 {
			return fmt.Errorf("update %s: %w", card.ID, ErrDeckNotFound)
		}
		if err := s.validate.Struct(card); err != nil {
			return fmt.Errorf("%w %s: %v", ErrInvalidCard, card.ID, err)
		}
		tx.cards[i] = card
		return nil
	})
}

// DeleteCard 删除卡片
func (s *Store) DeleteCard(id string) error {
	return s.commit(func(tx *snapshot) error {
		i := tx.cardIndex(id)
		if i < 0 {
			return fmt.Errorf("delete %s: %w", id, ErrCardNotFound)
		}
		tx.cards = append(tx.cards[:i], tx.cards[i+1:]...)
		return nil
	})
}

// prepareCard 补全创建时间和初始复习进度
func (s *Store) prepareCard(c *Card, now time.Time) {
	c.Japanese = strings.TrimSpace(c.Japanese)
	c.Romaji = strings.TrimSpace(c.Romaji)
	c.Meaning = strings.TrimSpace(c.Meaning)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.Review.EF == 0 {
		c.Review = ReviewMeta{EF: DefaultEF, NextReview: now}
	}
}
