package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// In-memory repository fakes. Each keeps rows in a map keyed by id and
// fails with gorm.ErrRecordNotFound the way the real repositories do.

type fakeProductRepo struct {
	rows   map[uint]models.Product
	nextID uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{rows: map[uint]models.Product{}, nextID: 1}
}

func (f *fakeProductRepo) seed(p models.Product) models.Product {
	p.ID = f.nextID
	f.nextID++
	f.rows[p.ID] = p
	return p
}

func (f *fakeProductRepo) FindByID(id uint) (models.Product, error) {
	p, ok := f.rows[id]
	if !ok {
		return p, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) FindByIDs(ids []uint) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(p *models.Product) error {
	*p = f.seed(*p)
	return nil
}

func (f *fakeProductRepo) CreateBatch(ps []models.Product) ([]models.Product, error) {
	for i := range ps {
		ps[i] = f.seed(ps[i])
	}
	return ps, nil
}

func (f *fakeProductRepo) Update(p *models.Product) error {
	if _, ok := f.rows[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.rows[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeProductRepo) Paginate(_ []orm.Scope, page, limit int) ([]models.Product, orm.Pagination, error) {
	var out []models.Product
	for _, p := range f.rows {
		out = append(out, p)
	}
	pg := orm.Pagination{Page: page, Limit: limit, Total: int64(len(out)), TotalPages: 1}
	return out, pg, nil
}

func (f *fakeProductRepo) Count() (int64, error) { return int64(len(f.rows)), nil }

type fakeOrderRepo struct {
	rows   map[uint]models.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{rows: map[uint]models.Order{}, nextID: 1}
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	o.ID = f.nextID
	f.nextID++
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeOrderRepo) Update(o *models.Order) error {
	if _, ok := f.rows[o.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeOrderRepo) FindByID(id uint) (models.Order, error) {
	o, ok := f.rows[id]
	if !ok {
		return o, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) UpdateStatus(id uint, status string) error {
	o, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	f.rows[id] = o
	return nil
}

func (f *fakeOrderRepo) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeOrderRepo) Paginate(_ []orm.Scope, page, limit int) ([]models.Order, orm.Pagination, error) {
	var out []models.Order
	for _, o := range f.rows {
		out = append(out, o)
	}
	pg := orm.Pagination{Page: page, Limit: limit, Total: int64(len(out)), TotalPages: 1}
	return out, pg, nil
}

func (f *fakeOrderRepo) ByUser(userID uint) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.rows {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Count() (int64, error) { return int64(len(f.rows)), nil }

func (f *fakeOrderRepo) CountByUser(userID uint) (int64, error) {
	var n int64
	for _, o := range f.rows {
		if o.UserID != nil && *o.UserID == userID && o.Status == models.OrderStatusDelivered {
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderRepo) DeliveredRevenue() (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range f.rows {
		if o.Status == models.OrderStatusDelivered {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

func (f *fakeOrderRepo) DeliveredRevenueByUser(userID uint) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range f.rows {
		if o.UserID != nil && *o.UserID == userID && o.Status == models.OrderStatusDelivered {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

func (f *fakeOrderRepo) RevenueBetween(from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range f.rows {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

type fakeUserRepo struct {
	rows   map[uint]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: map[uint]models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(u *models.User) error {
	u.ID = f.nextID
	f.nextID++
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	if _, ok := f.rows[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (models.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return u, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (models.User, error) {
	for _, u := range f.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UsernameTaken(username string, excludeID uint) (bool, error) {
	for _, u := range f.rows {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) EmailTaken(email string, excludeID uint) (bool, error) {
	for _, u := range f.rows {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Paginate(_ []orm.Scope, page, limit int) ([]models.User, orm.Pagination, error) {
	var out []models.User
	for _, u := range f.rows {
		out = append(out, u)
	}
	pg := orm.Pagination{Page: page, Limit: limit, Total: int64(len(out)), TotalPages: 1}
	return out, pg, nil
}

func (f *fakeUserRepo) Count() (int64, error) { return int64(len(f.rows)), nil }

type cartKey struct{ user, product uint }

type fakeCartRepo struct {
	rows   map[cartKey]models.CartItem
	nextID uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{rows: map[cartKey]models.CartItem{}, nextID: 1}
}

func (f *fakeCartRepo) FindLine(userID, productID uint) (models.CartItem, error) {
	item, ok := f.rows[cartKey{userID, productID}]
	if !ok {
		return item, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeCartRepo) Create(item *models.CartItem) error {
	item.ID = f.nextID
	f.nextID++
	f.rows[cartKey{item.UserID, item.ProductID}] = *item
	return nil
}

func (f *fakeCartRepo) Update(item *models.CartItem) error {
	f.rows[cartKey{item.UserID, item.ProductID}] = *item
	return nil
}

func (f *fakeCartRepo) ByUser(userID uint) ([]models.CartItem, error) {
	var out []models.CartItem
	for k, item := range f.rows {
		if k.user == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) DeleteLine(userID, productID uint) error {
	k := cartKey{userID, productID}
	if _, ok := f.rows[k]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, k)
	return nil
}

func (f *fakeCartRepo) Clear(userID uint) error {
	for k := range f.rows {
		if k.user == userID {
			delete(f.rows, k)
		}
	}
	return nil
}

func (f *fakeCartRepo) Replace(userID uint, items []models.CartItem) error {
	_ = f.Clear(userID)
	for i := range items {
		item := items[i]
		item.UserID = userID
		_ = f.Create(&item)
	}
	return nil
}

type fakeWishlistRepo struct {
	rows map[cartKey]models.WishlistItem
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{rows: map[cartKey]models.WishlistItem{}}
}

func (f *fakeWishlistRepo) ByUser(userID uint) ([]models.WishlistItem, error) {
	var out []models.WishlistItem
	for k, item := range f.rows {
		if k.user == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeWishlistRepo) Exists(userID, productID uint) (bool, error) {
	_, ok := f.rows[cartKey{userID, productID}]
	return ok, nil
}

func (f *fakeWishlistRepo) Add(item *models.WishlistItem) error {
	f.rows[cartKey{item.UserID, item.ProductID}] = *item
	return nil
}

func (f *fakeWishlistRepo) Remove(userID, productID uint) error {
	k := cartKey{userID, productID}
	if _, ok := f.rows[k]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, k)
	return nil
}

type fakeShopReviewRepo struct {
	rows   map[uint]models.ShopReview
	nextID uint
}

func newFakeShopReviewRepo() *fakeShopReviewRepo {
	return &fakeShopReviewRepo{rows: map[uint]models.ShopReview{}, nextID: 1}
}

func (f *fakeShopReviewRepo) Create(rv *models.ShopReview) error {
	rv.ID = f.nextID
	f.nextID++
	f.rows[rv.ID] = *rv
	return nil
}

func (f *fakeShopReviewRepo) Update(rv *models.ShopReview) error {
	if _, ok := f.rows[rv.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.rows[rv.ID] = *rv
	return nil
}

func (f *fakeShopReviewRepo) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeShopReviewRepo) FindByID(id uint) (models.ShopReview, error) {
	rv, ok := f.rows[id]
	if !ok {
		return rv, gorm.ErrRecordNotFound
	}
	return rv, nil
}

func (f *fakeShopReviewRepo) Paginate(_ []orm.Scope, page, limit int) ([]models.ShopReview, orm.Pagination, error) {
	var out []models.ShopReview
	for _, rv := range f.rows {
		out = append(out, rv)
	}
	pg := orm.Pagination{Page: page, Limit: limit, Total: int64(len(out)), TotalPages: 1}
	return out, pg, nil
}

func (f *fakeShopReviewRepo) ByUser(userID uint) ([]models.ShopReview, error) {
	var out []models.ShopReview
	for _, rv := range f.rows {
		if rv.UserID == userID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (f *fakeShopReviewRepo) HasReviewed(userID uint) (bool, error) {
	for _, rv := range f.rows {
		if rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeShopReviewRepo) AverageRating() (float64, error) {
	if len(f.rows) == 0 {
		return 0, nil
	}
	var sum int
	for _, rv := range f.rows {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(f.rows)), nil
}

func (f *fakeShopReviewRepo) CountByRating() (map[int]int64, error) {
	out := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, rv := range f.rows {
		out[rv.Rating]++
	}
	return out, nil
}

type fakeProductReviewRepo struct {
	rows   map[uint]models.ProductReview
	nextID uint
}

func newFakeProductReviewRepo() *fakeProductReviewRepo {
	return &fakeProductReviewRepo{rows: map[uint]models.ProductReview{}, nextID: 1}
}

func (f *fakeProductReviewRepo) Create(rv *models.ProductReview) error {
	rv.ID = f.nextID
	f.nextID++
	f.rows[rv.ID] = *rv
	return nil
}

func (f *fakeProductReviewRepo) Update(rv *models.ProductReview) error {
	if _, ok := f.rows[rv.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.rows[rv.ID] = *rv
	return nil
}

func (f *fakeProductReviewRepo) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeProductReviewRepo) FindByID(id uint) (models.ProductReview, error) {
	rv, ok := f.rows[id]
	if !ok {
		return rv, gorm.ErrRecordNotFound
	}
	return rv, nil
}

func (f *fakeProductReviewRepo) Paginate(page, limit int) ([]models.ProductReview, orm.Pagination, error) {
	var out []models.ProductReview
	for _, rv := range f.rows {
		out = append(out, rv)
	}
	pg := orm.Pagination{Page: page, Limit: limit, Total: int64(len(out)), TotalPages: 1}
	return out, pg, nil
}

func (f *fakeProductReviewRepo) ByProduct(productID uint) ([]models.ProductReview, error) {
	var out []models.ProductReview
	for _, rv := range f.rows {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (f *fakeProductReviewRepo) PaginateAnswered(page, limit int) ([]models.ProductReview, orm.Pagination, error) {
	var out []models.ProductReview
	for _, rv := range f.rows {
		if rv.Answered() {
			out = append(out, rv)
		}
	}
	pg := orm.Pagination{Page: page, Limit: limit, Total: int64(len(out)), TotalPages: 1}
	return out, pg, nil
}
