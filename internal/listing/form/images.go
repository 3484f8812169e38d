package form

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/estate-admin/internal/listing/domain"
)

// StagedFile is a locally-held image awaiting upload. The preview token
// is transient: it identifies the staged bytes for display only and must
// never be persisted. Only post-upload resolved URLs reach the record.
type StagedFile struct {
	Name         string
	Data         []byte
	PreviewToken string
}

// StageFile wraps raw file bytes with a fresh preview token. No size or
// type validation: anything the picker returned is accepted.
func StageFile(name string, data []byte) StagedFile {
	return StagedFile{
		Name:         name,
		Data:         data,
		PreviewToken: "preview-" + uuid.NewString(),
	}
}

func StageFiles(names []string, datas [][]byte) []StagedFile {
	staged := make([]StagedFile, len(names))
	for i := range names {
		staged[i] = StageFile(names[i], datas[i])
	}
	return staged
}

// SetBuildingImage stages the primary image for the listing.
func (s *Store) SetBuildingImage(file StagedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	d.Image = &file
	s.draft = d
}

// SetHouseImages replaces the staged house image set.
func (s *Store) SetHouseImages(files []StagedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	d.HouseImages = files
	s.draft = d
}

// SetApartmentImages replaces the staged image set of one apartment.
func (s *Store) SetApartmentImages(floorIndex, apartmentIndex int, files []StagedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apt, err := s.apartmentAt(floorIndex, apartmentIndex)
	if err != nil {
		return err
	}
	apt.Staged = files
	s.replaceApartment(floorIndex, apartmentIndex, apt)
	return nil
}

// FindPreview looks a staged file up by its preview token across every
// slot of the draft.
func (s *Store) FindPreview(token string) (StagedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft
	if d.Image != nil && d.Image.PreviewToken == token {
		return *d.Image, nil
	}
	for _, f := range d.HouseImages {
		if f.PreviewToken == token {
			return f, nil
		}
	}
	for _, floor := range d.Floors {
		for _, apt := range floor.Apartments {
			for _, f := range apt.Staged {
				if f.PreviewToken == token {
					return f, nil
				}
			}
		}
	}
	return StagedFile{}, fmt.Errorf("preview %q: %w", token, domain.ErrPreviewNotFound)
}
