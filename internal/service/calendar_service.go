package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/clock"
	"github.com/Freeeeeet/everyclass_server/internal/counter"
	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CacheLimit ограничивает отдачу закэшированных ics-файлов:
// не больше Hits раз за Window и принудительная перегенерация,
// если счётчик не сбрасывался дольше ForceRefresh
type CacheLimit struct {
	Window       time.Duration
	Hits         int
	ForceRefresh time.Duration
}

// DefaultCacheLimit два раза в час, раз в сутки обязательно заново
var DefaultCacheLimit = CacheLimit{
	Window:       time.Hour,
	Hits:         2,
	ForceRefresh: 24 * time.Hour,
}

type CalendarService struct {
	tokens   TokenStore
	counters CounterStore
	access   *AccessService
	limit    CacheLimit
	clock    clock.Clock
	logger   *zap.Logger
}

func NewCalendarService(
	tokens TokenStore,
	counters CounterStore,
	access *AccessService,
	limit CacheLimit,
	clk clock.Clock,
	logger *zap.Logger,
) *CalendarService {
	return &CalendarService{
		tokens:   tokens,
		counters: counters,
		access:   access,
		limit:    limit,
		clock:    clk,
		logger:   logger,
	}
}

// GetOrCreateToken получает токен подписки, создавая его при первом запросе
func (s *CalendarService) GetOrCreateToken(ctx context.Context, kind model.ResourceKind, identifier, semester string) (string, error) {
	if !kind.IsPerson() {
		return "", ErrInvalidCalendarKind
	}

	existing, err := s.tokens.FindByResource(ctx, kind, identifier, semester)
	if err != nil {
		return "", fmt.Errorf("find calendar token: %w", err)
	}
	if existing != nil {
		return existing.Token.String(), nil
	}

	token := &model.CalendarToken{
		Token:      uuid.New(),
		Kind:       kind,
		Identifier: identifier,
		Semester:   semester,
		CreateTime: s.clock.Now(),
	}

	created, err := s.tokens.Create(ctx, token)
	if err != nil {
		return "", fmt.Errorf("create calendar token: %w", err)
	}

	// Параллельный запрос успел создать свой токен, отдаём его
	if !created {
		existing, err = s.tokens.FindByResource(ctx, kind, identifier, semester)
		if err != nil {
			return "", fmt.Errorf("find calendar token: %w", err)
		}
		if existing == nil {
			return "", fmt.Errorf("calendar token for %s %s vanished after conflict", kind, identifier)
		}
		return existing.Token.String(), nil
	}

	s.logger.Info("Calendar token created",
		zap.String("type", string(kind)),
		zap.String("identifier", identifier),
		zap.String("semester", semester),
	)

	return token.Token.String(), nil
}

// Subscribe выдаёт токен подписки на расписание от имени viewer.
// Расписание студента требует права на просмотр, расписание преподавателя открыто.
func (s *CalendarService) Subscribe(ctx context.Context, kind model.ResourceKind, identifier, semester string, viewer model.Viewer) (string, model.Decision, error) {
	if kind == model.KindStudent {
		decision, err := s.access.CheckAccess(ctx, identifier, viewer, false)
		if err != nil {
			return "", model.Decision{}, fmt.Errorf("check access: %w", err)
		}
		if !decision.Allowed {
			return "", decision, nil
		}
	}

	token, err := s.GetOrCreateToken(ctx, kind, identifier, semester)
	if err != nil {
		return "", model.Decision{}, err
	}

	return token, model.Decision{Allowed: true}, nil
}

// Resolve находит привязку токена
func (s *CalendarService) Resolve(ctx context.Context, token string) (*model.CalendarToken, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	found, err := s.tokens.FindByToken(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find calendar token: %w", err)
	}
	if found == nil {
		return nil, ErrTokenNotFound
	}

	return found, nil
}

// MarkUsed обновляет время последнего использования токена
func (s *CalendarService) MarkUsed(ctx context.Context, token string) error {
	id, err := uuid.Parse(token)
	if err != nil {
		return ErrInvalidToken
	}

	touched, err := s.tokens.Touch(ctx, id, s.clock.Now())
	if err != nil {
		return fmt.Errorf("mark calendar token used: %w", err)
	}
	if !touched {
		return ErrTokenNotFound
	}

	return nil
}

// ResetAll удаляет все токены пользователя, старые ссылки подписки перестают работать
func (s *CalendarService) ResetAll(ctx context.Context, identifier string, kind model.ResourceKind) error {
	deleted, err := s.tokens.DeleteByIdentifier(ctx, identifier, kind)
	if err != nil {
		return fmt.Errorf("reset calendar tokens: %w", err)
	}

	s.logger.Info("Calendar tokens reset",
		zap.String("type", string(kind)),
		zap.String("identifier", identifier),
		zap.Int64("deleted", deleted),
	)

	return nil
}

// ShouldUseCachedFile решает, можно ли отдать уже сгенерированный файл cacheKey.
// Чтение и запись счётчика не атомарны: при гонке кэш может отдаться чуть чаще лимита.
func (s *CalendarService) ShouldUseCachedFile(cacheKey string) bool {
	now := s.clock.Now()
	fresh := counter.Entry{ResetAt: now, Count: s.limit.Hits - 1}

	entry, ok := s.counters.Get(cacheKey)
	if !ok {
		s.counters.Set(cacheKey, fresh)
		return true
	}

	elapsed := now.Sub(entry.ResetAt)

	if elapsed < s.limit.Window {
		// Лимит в текущем окне исчерпан
		if entry.Count <= 0 {
			s.counters.Set(cacheKey, fresh)
			return false
		}
		entry.Count--
		s.counters.Set(cacheKey, entry)
		return true
	}

	s.counters.Set(cacheKey, fresh)

	// Файл старше суток перегенерируем в любом случае
	return elapsed <= s.limit.ForceRefresh
}
