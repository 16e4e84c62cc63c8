package models

// Comic is a titled creative work composed of ordered pages. Hash is a
// SHA-256 digest of the normalized submission payload, unique per creator,
// used for duplicate detection on create.
type Comic struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Text        string `gorm:"not null" json:"text"`
	Description string `json:"description"`
	Creator     string `gorm:"type:uuid;index;index:idx_comics_creator_hash,unique" json:"creator"`
	Hash        string `gorm:"index:idx_comics_creator_hash,unique" json:"-"`

	// Associations
	Pages []Page `gorm:"foreignKey:ComicsID;references:ID;constraint:OnDelete:CASCADE" json:"pages,omitempty"`
}

func (Comic) TableName() string {
	return "comics"
}

// Page is a rows x columns grid of image cells belonging to one comic.
// Numbers are zero-based and contiguous within a comic; deleting a page
// renumbers the remainder.
type Page struct {
	PageID   string `gorm:"column:pageid;primaryKey;type:uuid" json:"pageId"`
	ComicsID string `gorm:"column:comicsid;type:uuid;index" json:"comicsId"`
	Number   int    `gorm:"not null" json:"number"`
	Rows     int    `gorm:"not null" json:"rows"`
	Columns  int    `gorm:"not null" json:"columns"`

	Images []Image `gorm:"foreignKey:PageID;references:PageID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (Page) TableName() string {
	return "pages"
}

// Image occupies one cell of a page grid. Display order within a page is by
// CellIndex ascending. The legacy table is named "image", singular.
type Image struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	PageID    string `gorm:"column:pageid;type:uuid;index" json:"pageId"`
	CellIndex int    `gorm:"column:cellindex" json:"cellIndex"`
	Image     []byte `gorm:"column:image;type:bytea;not null" json:"-"`
}

func (Image) TableName() string {
	return "image"
}
