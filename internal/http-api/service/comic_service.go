package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"comichub/internal/http-api/dto"
	"comichub/internal/http-api/models"
	"comichub/internal/http-api/repository"
)

// Notifier is told about a freshly published comic. Implementations run
// detached from the request path; they must never fail the publish.
type Notifier interface {
	ComicPublished(creatorID, comicID, title string)
}

// ComicListItem is a listing entry with an optional binary cover.
type ComicListItem struct {
	ID          string
	Text        string
	Description string
	Cover       []byte
}

// ComicInfo aggregates the detail view of a comic relative to a viewer.
type ComicInfo struct {
	Comic         *models.Comic
	CreatorName   string
	FirstPage     *models.Page
	LikesCount    int64
	UserLiked     bool
	UserFavorited bool
	Comments      []models.Comment
}

type ComicService interface {
	Create(ctx context.Context, creatorID string, req dto.CreateComicRequest) (string, error)
	Update(ctx context.Context, userID, comicID string, req dto.UpdateComicRequest) error
	Delete(ctx context.Context, userID, comicID string) error
	Get(ctx context.Context, comicID string) (*models.Comic, error)
	Info(ctx context.Context, comicID, viewerID string) (*ComicInfo, error)
	List(ctx context.Context) ([]ComicListItem, error)
	ListMine(ctx context.Context, userID string) ([]ComicListItem, error)

	AddPage(ctx context.Context, userID, comicID string, rows, columns int) (*models.Page, error)
	GetPage(ctx context.Context, pageID string) (*models.Page, error)
	DeletePage(ctx context.Context, userID, pageID string) error

	AddImage(ctx context.Context, userID, pageID string, cellIndex int, imageB64 string) (string, error)
	UpdateImage(ctx context.Context, userID, imageID, imageB64 string) error
	DeleteImage(ctx context.Context, userID, imageID string) error
}

type comicService struct {
	comics   repository.ComicRepository
	social   repository.SocialRepository
	users    repository.UserRepository
	notifier Notifier
}

func NewComicService(
	comics repository.ComicRepository,
	social repository.SocialRepository,
	users repository.UserRepository,
	notifier Notifier,
) ComicService {
	return &comicService{
		comics:   comics,
		social:   social,
		users:    users,
		notifier: notifier,
	}
}

// contentHash digests the normalized submission payload. Identical
// (text, description, pages) submissions produce identical hashes, which is
// what the per-creator duplicate check keys on.
func contentHash(req dto.CreateComicRequest) string {
	payload, _ := json.Marshal(req)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func (s *comicService) Create(ctx context.Context, creatorID string, req dto.CreateComicRequest) (string, error) {
	comic := &models.Comic{
		ID:          uuid.New().String(),
		Text:        req.Text,
		Description: req.Description,
		Creator:     creatorID,
		Hash:        contentHash(req),
		Pages:       make([]models.Page, 0, len(req.Pages)),
	}

	for number, pageReq := range req.Pages {
		page := models.Page{
			PageID:   uuid.New().String(),
			ComicsID: comic.ID,
			Number:   number,
			Rows:     pageReq.Rows,
			Columns:  pageReq.Columns,
			Images:   make([]models.Image, 0, len(pageReq.Images)),
		}
		for position, imgReq := range pageReq.Images {
			data, err := base64.StdEncoding.DecodeString(imgReq.Image)
			if err != nil {
				return "", ErrBadImageData
			}
			cellIndex := position
			if imgReq.CellIndex != nil {
				cellIndex = *imgReq.CellIndex
			}
			page.Images = append(page.Images, models.Image{
				ID:        uuid.New().String(),
				PageID:    page.PageID,
				CellIndex: cellIndex,
				Image:     data,
			})
		}
		comic.Pages = append(comic.Pages, page)
	}

	if err := s.comics.CreateWithPages(ctx, comic); err != nil {
		return "", err
	}

	// Fan-out happens after the transaction committed and never touches
	// the HTTP response.
	if s.notifier != nil {
		go s.notifier.ComicPublished(creatorID, comic.ID, comic.Text)
	}
	return comic.ID, nil
}

func (s *comicService) Update(ctx context.Context, userID, comicID string, req dto.UpdateComicRequest) error {
	if err := s.assertComicCreator(ctx, comicID, userID); err != nil {
		return err
	}

	pages := make([]models.Page, 0, len(req.Pages))
	for _, pageReq := range req.Pages {
		page := models.Page{
			PageID:  pageReq.PageID,
			Number:  pageReq.Number,
			Rows:    pageReq.Rows,
			Columns: pageReq.Columns,
		}
		if page.PageID == "" {
			page.PageID = uuid.New().String()
		}
		for _, imgReq := range pageReq.Images {
			data, err := base64.StdEncoding.DecodeString(imgReq.Image)
			if err != nil {
				return ErrBadImageData
			}
			img := models.Image{
				ID:        imgReq.ID,
				CellIndex: imgReq.CellIndex,
				Image:     data,
			}
			if img.ID == "" {
				img.ID = uuid.New().String()
			}
			page.Images = append(page.Images, img)
		}
		pages = append(pages, page)
	}

	err := s.comics.Update(ctx, comicID, req.Comic.Text, req.Comic.Description, pages)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A submitted page or image id that belongs to another comic.
		return ErrPageNotFound
	}
	return err
}

func (s *comicService) Delete(ctx context.Context, userID, comicID string) error {
	if err := s.assertComicCreator(ctx, comicID, userID); err != nil {
		return err
	}
	return s.comics.Delete(ctx, comicID)
}

func (s *comicService) Get(ctx context.Context, comicID string) (*models.Comic, error) {
	comic, err := s.comics.GetFull(ctx, comicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrComicNotFound
	}
	return comic, err
}

func (s *comicService) Info(ctx context.Context, comicID, viewerID string) (*ComicInfo, error) {
	comic, err := s.comics.GetByID(ctx, comicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrComicNotFound
	}
	if err != nil {
		return nil, err
	}

	creator, err := s.users.FindByID(ctx, comic.Creator)
	if err != nil {
		return nil, err
	}

	info := &ComicInfo{
		Comic:       comic,
		CreatorName: creator.Name,
	}

	firstPage, err := s.comics.FirstPage(ctx, comicID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	info.FirstPage = firstPage

	if info.LikesCount, err = s.social.LikeCount(ctx, comicID); err != nil {
		return nil, err
	}
	if viewerID != "" {
		if info.UserLiked, err = s.social.IsLiked(ctx, viewerID, comicID); err != nil {
			return nil, err
		}
		if info.UserFavorited, err = s.social.IsFavorited(ctx, viewerID, comicID); err != nil {
			return nil, err
		}
	}
	if info.Comments, err = s.social.ListComments(ctx, comicID); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *comicService) List(ctx context.Context) ([]ComicListItem, error) {
	comics, err := s.comics.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withCovers(ctx, comics)
}

func (s *comicService) ListMine(ctx context.Context, userID string) ([]ComicListItem, error) {
	comics, err := s.comics.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withCovers(ctx, comics)
}

func (s *comicService) withCovers(ctx context.Context, comics []models.Comic) ([]ComicListItem, error) {
	items := make([]ComicListItem, 0, len(comics))
	for _, comic := range comics {
		cover, err := s.comics.CoverImage(ctx, comic.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, ComicListItem{
			ID:          comic.ID,
			Text:        comic.Text,
			Description: comic.Description,
			Cover:       cover,
		})
	}
	return items, nil
}

func (s *comicService) AddPage(ctx context.Context, userID, comicID string, rows, columns int) (*models.Page, error) {
	if err := s.assertComicCreator(ctx, comicID, userID); err != nil {
		return nil, err
	}
	page := &models.Page{
		PageID:   uuid.New().String(),
		ComicsID: comicID,
		Rows:     rows,
		Columns:  columns,
	}
	if err := s.comics.AddPage(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *comicService) GetPage(ctx context.Context, pageID string) (*models.Page, error) {
	page, err := s.comics.GetPage(ctx, pageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPageNotFound
	}
	return page, err
}

func (s *comicService) DeletePage(ctx context.Context, userID, pageID string) error {
	if _, err := s.assertPageCreator(ctx, pageID, userID); err != nil {
		return err
	}
	return s.comics.DeletePageAndRenumber(ctx, pageID)
}

func (s *comicService) AddImage(ctx context.Context, userID, pageID string, cellIndex int, imageB64 string) (string, error) {
	if _, err := s.assertPageCreator(ctx, pageID, userID); err != nil {
		return "", err
	}
	data, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return "", ErrBadImageData
	}
	image := &models.Image{
		ID:        uuid.New().String(),
		PageID:    pageID,
		CellIndex: cellIndex,
		Image:     data,
	}
	if err := s.comics.AddImage(ctx, image); err != nil {
		return "", err
	}
	return image.ID, nil
}

func (s *comicService) UpdateImage(ctx context.Context, userID, imageID, imageB64 string) error {
	if err := s.assertImageCreator(ctx, imageID, userID); err != nil {
		return err
	}
	data, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return ErrBadImageData
	}
	return s.comics.UpdateImageData(ctx, imageID, data)
}

func (s *comicService) DeleteImage(ctx context.Context, userID, imageID string) error {
	if err := s.assertImageCreator(ctx, imageID, userID); err != nil {
		return err
	}
	return s.comics.DeleteImage(ctx, imageID)
}

// The ownership checks below run before any mutating statement: resolve the
// owning comic up the chain, then compare its creator to the caller.

func (s *comicService) assertComicCreator(ctx context.Context, comicID, userID string) error {
	creator, err := s.comics.OwnerOfComic(ctx, comicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrComicNotFound
	}
	if err != nil {
		return err
	}
	if creator != userID {
		return ErrNotCreator
	}
	return nil
}

func (s *comicService) assertPageCreator(ctx context.Context, pageID, userID string) (*repository.Ownership, error) {
	owner, err := s.comics.OwnerOfPage(ctx, pageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, err
	}
	if owner.Creator != userID {
		return nil, ErrNotCreator
	}
	return owner, nil
}

func (s *comicService) assertImageCreator(ctx context.Context, imageID, userID string) error {
	owner, err := s.comics.OwnerOfImage(ctx, imageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrImageNotFound
	}
	if err != nil {
		return err
	}
	if owner.Creator != userID {
		return ErrNotCreator
	}
	return nil
}
