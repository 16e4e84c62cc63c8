package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comichub/internal/http-api/models"
)

// DuplicateComicError reports that the creator already has a comic with the
// same content hash. ExistingID is returned to the client for dedup.
type DuplicateComicError struct {
	ExistingID string
}

func (e *DuplicateComicError) Error() string {
	return "comic with identical content already exists"
}

// Ownership is the result of resolving a nested resource (page, image) up
// its chain to the owning comic and its creator.
type Ownership struct {
	ComicID string
	Creator string
}

type ComicRepository interface {
	// CreateWithPages inserts the comic with all nested pages and images in
	// one transaction. A (creator, hash) duplicate aborts the transaction
	// and yields *DuplicateComicError.
	CreateWithPages(ctx context.Context, comic *models.Comic) error
	// Update rewrites the comic's text/description and upserts the given
	// pages and images by id. Rows not mentioned in the payload are kept:
	// partial updates accumulate, they never delete. A submitted page or
	// image id that exists but belongs to another comic fails the whole
	// transaction with gorm.ErrRecordNotFound.
	Update(ctx context.Context, comicID, text, description string, pages []models.Page) error
	Delete(ctx context.Context, comicID string) error

	GetByID(ctx context.Context, comicID string) (*models.Comic, error)
	GetFull(ctx context.Context, comicID string) (*models.Comic, error)
	ListAll(ctx context.Context) ([]models.Comic, error)
	ListByCreator(ctx context.Context, creator string) ([]models.Comic, error)
	CoverImage(ctx context.Context, comicID string) ([]byte, error)
	Exists(ctx context.Context, comicID string) (bool, error)

	// AddPage appends a page to the comic, numbering it after the current
	// last page, inside a transaction.
	AddPage(ctx context.Context, page *models.Page) error
	GetPage(ctx context.Context, pageID string) (*models.Page, error)
	FirstPage(ctx context.Context, comicID string) (*models.Page, error)
	// DeletePageAndRenumber removes the page (cascading its images) and
	// renumbers the comic's remaining pages back to a contiguous 0-based
	// sequence, all in one transaction.
	DeletePageAndRenumber(ctx context.Context, pageID string) error

	AddImage(ctx context.Context, image *models.Image) error
	UpdateImageData(ctx context.Context, imageID string, data []byte) error
	DeleteImage(ctx context.Context, imageID string) error

	// Ownership-chain resolution shared by every mutating route.
	OwnerOfComic(ctx context.Context, comicID string) (string, error)
	OwnerOfPage(ctx context.Context, pageID string) (*Ownership, error)
	OwnerOfImage(ctx context.Context, imageID string) (*Ownership, error)
}

type comicRepository struct {
	db *gorm.DB
}

func NewComicRepository(db *gorm.DB) ComicRepository {
	return &comicRepository{db: db}
}

func (r *comicRepository) CreateWithPages(ctx context.Context, comic *models.Comic) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Comic
		err := tx.Select("id").
			Where("creator = ? AND hash = ?", comic.Creator, comic.Hash).
			First(&existing).Error
		if err == nil {
			return &DuplicateComicError{ExistingID: existing.ID}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Create inserts the nested pages and images too; any failure
		// rolls back the whole aggregate.
		if err := tx.Create(comic).Error; err != nil {
			if IsUniqueViolation(err) {
				// Lost the race against a concurrent identical submit.
				if tx.Select("id").
					Where("creator = ? AND hash = ?", comic.Creator, comic.Hash).
					First(&existing).Error == nil {
					return &DuplicateComicError{ExistingID: existing.ID}
				}
			}
			return err
		}
		return nil
	})
}

func (r *comicRepository) Update(ctx context.Context, comicID, text, description string, pages []models.Page) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Comic{}).
			Where("id = ?", comicID).
			Updates(map[string]interface{}{"text": text, "description": description}).Error; err != nil {
			return err
		}

		for i := range pages {
			page := pages[i]
			images := page.Images
			page.Images = nil
			page.ComicsID = comicID

			// The upsert conflicts on the primary key alone, so an id
			// belonging to another comic would hit the UPDATE branch and
			// rewrite a foreign row. Reject those before touching anything.
			if err := pageInScope(tx, page.PageID, comicID); err != nil {
				return err
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "pageid"}},
				DoUpdates: clause.AssignmentColumns([]string{"number", "rows", "columns"}),
			}).Create(&page).Error; err != nil {
				return err
			}

			for j := range images {
				img := images[j]
				img.PageID = page.PageID
				if err := imageInScope(tx, img.ID, page.PageID); err != nil {
					return err
				}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "id"}},
					DoUpdates: clause.AssignmentColumns([]string{"cellindex", "image"}),
				}).Create(&img).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// pageInScope permits the upsert of pageID when the id is unused yet or the
// existing row already belongs to comicID. A foreign id reads as not found.
func pageInScope(tx *gorm.DB, pageID, comicID string) error {
	var existing models.Page
	err := tx.Select("comicsid").First(&existing, "pageid = ?", pageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ComicsID != comicID {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func imageInScope(tx *gorm.DB, imageID, pageID string) error {
	var existing models.Image
	err := tx.Select("pageid").First(&existing, "id = ?", imageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.PageID != pageID {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *comicRepository) Delete(ctx context.Context, comicID string) error {
	// Pages and images go with it via ON DELETE CASCADE.
	return r.db.WithContext(ctx).Delete(&models.Comic{}, "id = ?", comicID).Error
}

func (r *comicRepository) GetByID(ctx context.Context, comicID string) (*models.Comic, error) {
	var comic models.Comic
	if err := r.db.WithContext(ctx).First(&comic, "id = ?", comicID).Error; err != nil {
		return nil, err
	}
	return &comic, nil
}

func (r *comicRepository) GetFull(ctx context.Context, comicID string) (*models.Comic, error) {
	var comic models.Comic
	err := r.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Preload("Pages.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("cellindex ASC")
		}).
		First(&comic, "id = ?", comicID).Error
	if err != nil {
		return nil, err
	}
	return &comic, nil
}

func (r *comicRepository) ListAll(ctx context.Context) ([]models.Comic, error) {
	var comics []models.Comic
	err := r.db.WithContext(ctx).
		Select("id", "text", "description", "creator").
		Find(&comics).Error
	return comics, err
}

func (r *comicRepository) ListByCreator(ctx context.Context, creator string) ([]models.Comic, error) {
	var comics []models.Comic
	err := r.db.WithContext(ctx).
		Select("id", "text", "description", "creator").
		Where("creator = ?", creator).
		Order("text").
		Find(&comics).Error
	return comics, err
}

// CoverImage picks the first image (lowest cellindex) of the lowest-numbered
// page, used as a thumbnail in listings. Returns nil when the comic has no
// images yet.
func (r *comicRepository) CoverImage(ctx context.Context, comicID string) ([]byte, error) {
	var rows []models.Image
	err := r.db.WithContext(ctx).Raw(
		`SELECT i.image
		 FROM pages p
		 JOIN image i ON i.pageid = p.pageid
		 WHERE p.comicsid = ?
		 ORDER BY p.number ASC, i.cellindex ASC
		 LIMIT 1`, comicID).Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0].Image, nil
}

func (r *comicRepository) Exists(ctx context.Context, comicID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comic{}).
		Where("id = ?", comicID).
		Count(&count).Error
	return count > 0, err
}

func (r *comicRepository) AddPage(ctx context.Context, page *models.Page) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Page{}).
			Where("comicsid = ?", page.ComicsID).
			Count(&count).Error; err != nil {
			return err
		}
		page.Number = int(count)
		return tx.Create(page).Error
	})
}

func (r *comicRepository) GetPage(ctx context.Context, pageID string) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("cellindex ASC")
		}).
		First(&page, "pageid = ?", pageID).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *comicRepository) FirstPage(ctx context.Context, comicID string) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("cellindex ASC")
		}).
		Where("comicsid = ?", comicID).
		Order("number ASC").
		First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *comicRepository) DeletePageAndRenumber(ctx context.Context, pageID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var page models.Page
		if err := tx.First(&page, "pageid = ?", pageID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Page{}, "pageid = ?", pageID).Error; err != nil {
			return err
		}

		// Close the gap: remaining pages keep their relative order but get
		// contiguous 0-based numbers again.
		var remaining []models.Page
		if err := tx.Where("comicsid = ?", page.ComicsID).
			Order("number ASC").
			Find(&remaining).Error; err != nil {
			return err
		}
		for i := range remaining {
			if remaining[i].Number != i {
				if err := tx.Model(&models.Page{}).
					Where("pageid = ?", remaining[i].PageID).
					Update("number", i).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *comicRepository) AddImage(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *comicRepository) UpdateImageData(ctx context.Context, imageID string, data []byte) error {
	return r.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("id = ?", imageID).
		Update("image", data).Error
}

func (r *comicRepository) DeleteImage(ctx context.Context, imageID string) error {
	return r.db.WithContext(ctx).Delete(&models.Image{}, "id = ?", imageID).Error
}

func (r *comicRepository) OwnerOfComic(ctx context.Context, comicID string) (string, error) {
	var comic models.Comic
	if err := r.db.WithContext(ctx).
		Select("creator").
		First(&comic, "id = ?", comicID).Error; err != nil {
		return "", err
	}
	return comic.Creator, nil
}

func (r *comicRepository) OwnerOfPage(ctx context.Context, pageID string) (*Ownership, error) {
	var owners []Ownership
	err := r.db.WithContext(ctx).Raw(
		`SELECT c.id AS comic_id, c.creator
		 FROM comics c
		 JOIN pages p ON p.comicsid = c.id
		 WHERE p.pageid = ?`, pageID).Scan(&owners).Error
	if err != nil {
		return nil, err
	}
	if len(owners) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &owners[0], nil
}

func (r *comicRepository) OwnerOfImage(ctx context.Context, imageID string) (*Ownership, error) {
	var owners []Ownership
	err := r.db.WithContext(ctx).Raw(
		`SELECT c.id AS comic_id, c.creator
		 FROM comics c
		 JOIN pages p ON p.comicsid = c.id
		 JOIN image i ON i.pageid = p.pageid
		 WHERE i.id = ?`, imageID).Scan(&owners).Error
	if err != nil {
		return nil, err
	}
	if len(owners) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &owners[0], nil
}
