package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- credential / token fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

type fakeTokenService struct{}

func (fakeTokenService) Issue(subjectID string) (string, error) {
	return "token:" + subjectID, nil
}

func (fakeTokenService) Validate(tokenString string) (*service.Claims, error) {
	subjectID, ok := strings.CutPrefix(tokenString, "token:")
	if !ok {
		return nil, errors.New("invalid token")
	}

	return &service.Claims{SubjectID: subjectID}, nil
}

func testWebShop(score float64) *entity.WebShop {
	return &entity.WebShop{
		Title:   "storefront",
		Scoring: score,
		Texts:   []string{},
		Photos:  []string{},
		Reviews: []entity.Review{},
	}
}

// --- in-memory user repository ---

type userRecord struct {
	user    entity.User
	deleted bool
}

type fakeUserRepo struct {
	records map[string]*userRecord
	seq     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{records: make(map[string]*userRecord)}
}

func cloneUser(user entity.User) *entity.User {
	clone := user

	return &clone
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, rec := range r.records {
		if !rec.deleted && rec.user.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.records[user.ID] = &userRecord{user: *user}

	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	rec, ok := r.records[id]
	if !ok || rec.deleted {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(rec.user), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, rec := range r.records {
		if !rec.deleted && rec.user.Email == email {
			return cloneUser(rec.user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	for _, rec := range r.records {
		if !rec.deleted {
			users = append(users, cloneUser(rec.user))
		}
	}

	return users, nil
}

func (r *fakeUserRepo) FindTargets(_ context.Context, filter repository.TargetFilter) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	for _, rec := range r.records {
		if rec.deleted || !rec.user.AllowsReceivingOffers || rec.user.Role == entity.RoleAdmin {
			continue
		}
		if filter.City != "" && rec.user.City != filter.City {
			continue
		}
		if len(filter.Interests) > 0 {
			matched := false
			for _, interest := range filter.Interests {
				if rec.user.Interests == interest {
					matched = true

					break
				}
			}
			if !matched {
				continue
			}
		}
		users = append(users, cloneUser(rec.user))
	}

	return users, nil
}

func (r *fakeUserRepo) Replace(_ context.Context, user *entity.User) (*entity.User, error) {
	rec, ok := r.records[user.ID]
	if !ok || rec.deleted {
		return nil, repository.ErrUserNotFound
	}

	updated := *user
	updated.CreatedAt = rec.user.CreatedAt
	updated.UpdatedAt = time.Now()
	rec.user = updated

	return cloneUser(rec.user), nil
}

func (r *fakeUserRepo) Patch(_ context.Context, id string, patch repository.UserPatch) (*entity.User, error) {
	rec, ok := r.records[id]
	if !ok || rec.deleted {
		return nil, repository.ErrUserNotFound
	}

	if patch.Name != nil {
		rec.user.Name = *patch.Name
	}
	if patch.Email != nil {
		rec.user.Email = *patch.Email
	}
	if patch.Password != nil {
		rec.user.PasswordHash = *patch.Password
	}
	if patch.Age != nil {
		rec.user.Age = *patch.Age
	}
	if patch.City != nil {
		rec.user.City = *patch.City
	}
	if patch.Interests != nil {
		rec.user.Interests = *patch.Interests
	}
	if patch.AllowsReceivingOffers != nil {
		rec.user.AllowsReceivingOffers = *patch.AllowsReceivingOffers
	}
	if patch.Role != nil {
		rec.user.Role = *patch.Role
	}
	rec.user.UpdatedAt = time.Now()

	return cloneUser(rec.user), nil
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	rec, ok := r.records[id]
	if !ok || rec.deleted {
		return repository.ErrUserNotFound
	}
	rec.deleted = true

	return nil
}

func (r *fakeUserRepo) HardDelete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.records, id)

	return nil
}

// --- in-memory shop repository ---

type shopRecord struct {
	shop    entity.Shop
	deleted bool
}

type fakeShopRepo struct {
	records map[string]*shopRecord
	seq     int
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{records: make(map[string]*shopRecord)}
}

func cloneShop(shop entity.Shop) *entity.Shop {
	clone := shop
	if shop.WebShop != nil {
		webShop := *shop.WebShop
		webShop.Texts = append([]string(nil), shop.WebShop.Texts...)
		webShop.Photos = append([]string(nil), shop.WebShop.Photos...)
		webShop.Reviews = append([]entity.Review(nil), shop.WebShop.Reviews...)
		clone.WebShop = &webShop
	}

	return &clone
}

func (r *fakeShopRepo) Create(_ context.Context, shop *entity.Shop) error {
	for _, rec := range r.records {
		if rec.deleted {
			continue
		}
		if rec.shop.CIF == shop.CIF {
			return repository.ErrDuplicateCIF
		}
		if rec.shop.Email == shop.Email {
			return repository.ErrDuplicateEmail
		}
	}

	r.seq++
	shop.ID = fmt.Sprintf("shop-%d", r.seq)
	shop.WebShop = nil
	shop.CreatedAt = time.Now()
	shop.UpdatedAt = shop.CreatedAt
	r.records[shop.ID] = &shopRecord{shop: *shop}

	return nil
}

func (r *fakeShopRepo) FindByID(_ context.Context, id string) (*entity.Shop, error) {
	rec, ok := r.records[id]
	if !ok || rec.deleted {
		return nil, repository.ErrShopNotFound
	}

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) FindByEmail(_ context.Context, email string) (*entity.Shop, error) {
	for _, rec := range r.records {
		if !rec.deleted && rec.shop.Email == email {
			return cloneShop(rec.shop), nil
		}
	}

	return nil, repository.ErrShopNotFound
}

func (r *fakeShopRepo) FindByName(_ context.Context, name string) (*entity.Shop, error) {
	for _, rec := range r.records {
		if !rec.deleted && rec.shop.Name == name {
			return cloneShop(rec.shop), nil
		}
	}

	return nil, repository.ErrShopNotFound
}

func (r *fakeShopRepo) FindAll(_ context.Context) ([]*entity.Shop, error) {
	shops := make([]*entity.Shop, 0)
	for _, rec := range r.records {
		if !rec.deleted {
			shops = append(shops, cloneShop(rec.shop))
		}
	}

	return shops, nil
}

func (r *fakeShopRepo) Search(_ context.Context, search repository.ShopSearch) ([]*entity.Shop, error) {
	shops := make([]*entity.Shop, 0)
	for _, rec := range r.records {
		if rec.deleted {
			continue
		}
		if search.City != "" && rec.shop.City != search.City {
			continue
		}
		if search.Activity != "" && rec.shop.Activity != search.Activity {
			continue
		}
		shops = append(shops, cloneShop(rec.shop))
	}

	if search.SortByScore {
		for i := range shops {
			for j := i + 1; j < len(shops); j++ {
				if scoring(shops[j]) > scoring(shops[i]) {
					shops[i], shops[j] = shops[j], shops[i]
				}
			}
		}
	}

	return shops, nil
}

func scoring(shop *entity.Shop) float64 {
	if shop.WebShop == nil {
		return 0
	}

	return shop.WebShop.Scoring
}

func (r *fakeShopRepo) Replace(_ context.Context, shop *entity.Shop) (*entity.Shop, error) {
	rec, ok := r.records[shop.ID]
	if !ok || rec.deleted {
		return nil, repository.ErrShopNotFound
	}

	updated := *shop
	updated.WebShop = rec.shop.WebShop
	updated.CreatedAt = rec.shop.CreatedAt
	updated.UpdatedAt = time.Now()
	rec.shop = updated

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) Patch(_ context.Context, id string, patch repository.ShopPatch) (*entity.Shop, error) {
	rec, ok := r.records[id]
	if !ok || rec.deleted {
		return nil, repository.ErrShopNotFound
	}

	if patch.Name != nil {
		rec.shop.Name = *patch.Name
	}
	if patch.Email != nil {
		rec.shop.Email = *patch.Email
	}
	if patch.Password != nil {
		rec.shop.PasswordHash = *patch.Password
	}
	if patch.CIF != nil {
		rec.shop.CIF = *patch.CIF
	}
	if patch.City != nil {
		rec.shop.City = *patch.City
	}
	if patch.Phone != nil {
		rec.shop.Phone = *patch.Phone
	}
	if patch.Activity != nil {
		rec.shop.Activity = *patch.Activity
	}
	rec.shop.UpdatedAt = time.Now()

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) SoftDelete(_ context.Context, id string) error {
	rec, ok := r.records[id]
	if !ok || rec.deleted {
		return repository.ErrShopNotFound
	}
	rec.deleted = true

	return nil
}

func (r *fakeShopRepo) HardDelete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return repository.ErrShopNotFound
	}
	delete(r.records, id)

	return nil
}

func (r *fakeShopRepo) CreateWebShop(_ context.Context, shopID string, webShop *entity.WebShop) (*entity.Shop, error) {
	rec, ok := r.records[shopID]
	if !ok || rec.deleted {
		return nil, repository.ErrShopNotFound
	}
	if rec.shop.WebShop != nil {
		return nil, repository.ErrWebShopExists
	}

	attached := *webShop
	attached.CreatedAt = time.Now()
	attached.UpdatedAt = attached.CreatedAt
	rec.shop.WebShop = &attached

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) ReplaceWebShop(_ context.Context, shopID string, webShop *entity.WebShop) (*entity.Shop, error) {
	rec, err := r.liveWithStorefront(shopID)
	if err != nil {
		return nil, err
	}

	replaced := *webShop
	replaced.CreatedAt = time.Now()
	replaced.UpdatedAt = replaced.CreatedAt
	rec.shop.WebShop = &replaced

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) PatchWebShop(_ context.Context, shopID string, patch repository.WebShopPatch) (*entity.Shop, error) {
	rec, err := r.liveWithStorefront(shopID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		rec.shop.WebShop.Title = *patch.Title
	}
	if patch.Summary != nil {
		rec.shop.WebShop.Summary = *patch.Summary
	}
	if patch.Texts != nil {
		rec.shop.WebShop.Texts = *patch.Texts
	}
	if patch.Photos != nil {
		rec.shop.WebShop.Photos = *patch.Photos
	}

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) ClearWebShop(_ context.Context, shopID string) (*entity.Shop, error) {
	rec, ok := r.records[shopID]
	if !ok || rec.deleted {
		return nil, repository.ErrShopNotFound
	}
	rec.shop.WebShop = nil

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) PushPhoto(_ context.Context, shopID string, photo string) (*entity.Shop, error) {
	rec, err := r.liveWithStorefront(shopID)
	if err != nil {
		return nil, err
	}
	rec.shop.WebShop.Photos = append(rec.shop.WebShop.Photos, photo)

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) PushText(_ context.Context, shopID string, text string) (*entity.Shop, error) {
	rec, err := r.liveWithStorefront(shopID)
	if err != nil {
		return nil, err
	}
	rec.shop.WebShop.Texts = append(rec.shop.WebShop.Texts, text)

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) AddReview(_ context.Context, shopID string, review *entity.Review) (*entity.Shop, error) {
	rec, err := r.liveWithStorefront(shopID)
	if err != nil {
		return nil, err
	}

	r.seq++
	review.ID = fmt.Sprintf("review-%d", r.seq)
	review.CreatedAt = time.Now()

	webShop := rec.shop.WebShop
	webShop.Reviews = append(webShop.Reviews, *review)
	webShop.NumRatings = len(webShop.Reviews)

	total := 0
	for _, rev := range webShop.Reviews {
		total += rev.Score
	}
	webShop.Scoring = float64(total) / float64(len(webShop.Reviews))

	return cloneShop(rec.shop), nil
}

func (r *fakeShopRepo) liveWithStorefront(shopID string) (*shopRecord, error) {
	rec, ok := r.records[shopID]
	if !ok || rec.deleted {
		return nil, repository.ErrShopNotFound
	}
	if rec.shop.WebShop == nil {
		return nil, repository.ErrWebShopNotFound
	}

	return rec, nil
}
