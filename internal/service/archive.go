package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"arkiv/internal/model"
	"arkiv/internal/repository"
)

// ElementInput carries the mutable fields of an element for create/update.
type ElementInput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	ParentID  string `json:"parent_id"`
	Shelf     string `json:"shelf"`
	Rack      string `json:"rack"`
	DocNumber string `json:"doc_number"`
	SignDate  string `json:"sign_date"`
	Category  string `json:"category"`
}

// TreeNode is an element with its recursively nested children.
type TreeNode struct {
	model.Element
	Children []*TreeNode `json:"children,omitempty"`
}

// BoxDocument is one document row of a box info response.
type BoxDocument struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Number              string `json:"number"`
	Date                string `json:"date"`
	Category            string `json:"category"`
	CategoryDescription string `json:"category_description,omitempty"`
}

// BoxInfo is the payload behind a scanned label: the element itself plus
// every document found in its subtree.
type BoxInfo struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Type                 string        `json:"type"`
	Location             string        `json:"location"`
	Shelf                string        `json:"shelf"`
	Rack                 string        `json:"rack"`
	Category             string        `json:"category"`
	CategoryDescriptions []string      `json:"category_descriptions,omitempty"`
	DocumentsCount       int           `json:"documents_count"`
	Documents            []BoxDocument `json:"documents"`
}

// ArchiveService defines the use cases for the element tree.
type ArchiveService interface {
	// Create validates the input, assigns a UUID and stores the element.
	Create(ctx context.Context, in ElementInput) (*model.Element, error)

	// Get returns a single element by its ID.
	Get(ctx context.Context, id string) (*model.Element, error)

	// List returns elements matching the filter.
	List(ctx context.Context, f repository.ElementFilter) ([]model.Element, error)

	// Update validates and rewrites an element. Re-parenting into the
	// element's own subtree is rejected.
	Update(ctx context.Context, id string, in ElementInput) (*model.Element, error)

	// Delete removes an element; its children move to the root.
	Delete(ctx context.Context, id string) error

	// Subtree returns the element with its children nested recursively.
	Subtree(ctx context.Context, id string) (*TreeNode, error)

	// BoxInfo gathers the element and every document in its subtree, the
	// payload served for a scanned label.
	BoxInfo(ctx context.Context, id string) (*BoxInfo, error)

	// Locate renders the element's full location path through its ancestor
	// chain, e.g. "Box 'Contracts' / Rack 2 / Shelf A".
	Locate(ctx context.Context, id string) (string, error)
}

type archiveService struct {
	repo   repository.ElementRepository
	events EventPublisher
}

// NewArchiveService constructs an ArchiveService. events may be nil.
func NewArchiveService(repo repository.ElementRepository, events EventPublisher) ArchiveService {
	return &archiveService{repo: repo, events: events}
}

func (s *archiveService) Create(ctx context.Context, in ElementInput) (*model.Element, error) {
	if err := s.validate(ctx, "", &in); err != nil {
		return nil, err
	}

	el := &model.Element{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		ParentID:  in.ParentID,
		Shelf:     in.Shelf,
		Rack:      in.Rack,
		DocNumber: in.DocNumber,
		SignDate:  in.SignDate,
		Category:  in.Category,
	}
	stored, err := s.repo.Create(ctx, el)
	if err != nil {
		return nil, fmt.Errorf("create element: %w", err)
	}

	publish(s.events, EventElementCreated, stored.ID, stored.Name)
	return stored, nil
}

func (s *archiveService) Get(ctx context.Context, id string) (*model.Element, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	el, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return el, nil
}

func (s *archiveService) List(ctx context.Context, f repository.ElementFilter) ([]model.Element, error) {
	return s.repo.List(ctx, f)
}

func (s *archiveService) Update(ctx context.Context, id string, in ElementInput) (*model.Element, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, existing.ID, &in); err != nil {
		return nil, err
	}

	el := &model.Element{
		ID:        existing.ID,
		Name:      in.Name,
		Type:      in.Type,
		ParentID:  in.ParentID,
		Shelf:     in.Shelf,
		Rack:      in.Rack,
		DocNumber: in.DocNumber,
		SignDate:  in.SignDate,
		Category:  in.Category,
	}
	stored, err := s.repo.Update(ctx, el)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update element: %w", err)
	}

	publish(s.events, EventElementUpdated, stored.ID, stored.Name)
	return stored, nil
}

func (s *archiveService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("delete element: %w", err)
	}

	publish(s.events, EventElementDeleted, existing.ID, existing.Name)
	return nil
}

func (s *archiveService) Subtree(ctx context.Context, id string) (*TreeNode, error) {
	el, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildTree(ctx, *el, map[string]bool{el.ID: true})
}

func (s *archiveService) buildTree(ctx context.Context, el model.Element, visited map[string]bool) (*TreeNode, error) {
	node := &TreeNode{Element: el}
	children, err := s.repo.ListChildren(ctx, el.ID)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if visited[child.ID] {
			continue
		}
		visited[child.ID] = true
		childNode, err := s.buildTree(ctx, child, visited)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, childNode)
	}
	return node, nil
}

func (s *archiveService) BoxInfo(ctx context.Context, id string) (*BoxInfo, error) {
	el, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	docs, err := s.collectDocuments(ctx, el.ID, map[string]bool{el.ID: true})
	if err != nil {
		return nil, err
	}

	return &BoxInfo{
		ID:                   el.ID,
		Name:                 el.Name,
		Type:                 el.Type,
		Location:             ownLocation(*el),
		Shelf:                el.Shelf,
		Rack:                 el.Rack,
		Category:             el.Category,
		CategoryDescriptions: model.DescribeCategories(el.Category),
		DocumentsCount:       len(docs),
		Documents:            docs,
	}, nil
}

// collectDocuments walks the subtree depth-first, gathering documents from
// nested folders and boxes. Non-container, non-document children are ignored.
func (s *archiveService) collectDocuments(ctx context.Context, id string, visited map[string]bool) ([]BoxDocument, error) {
	children, err := s.repo.ListChildren(ctx, id)
	if err != nil {
		return nil, err
	}

	docs := make([]BoxDocument, 0)
	for _, child := range children {
		if visited[child.ID] {
			continue
		}
		visited[child.ID] = true

		switch {
		case child.Type == model.TypeDocument:
			docs = append(docs, BoxDocument{
				ID:                  child.ID,
				Name:                child.Name,
				Number:              child.DocNumber,
				Date:                child.SignDate,
				Category:            child.Category,
				CategoryDescription: strings.Join(model.DescribeCategories(child.Category), "; "),
			})
		case child.IsContainer():
			nested, err := s.collectDocuments(ctx, child.ID, visited)
			if err != nil {
				return nil, err
			}
			docs = append(docs, nested...)
		}
	}
	return docs, nil
}

// ownLocation renders the element's own shelf/rack for the box info payload.
func ownLocation(el model.Element) string {
	var parts []string
	if el.Shelf != "" {
		parts = append(parts, "Shelf: "+el.Shelf)
	}
	if el.Rack != "" {
		parts = append(parts, "Rack: "+el.Rack)
	}
	if len(parts) == 0 {
		return "Not specified"
	}
	return strings.Join(parts, ", ")
}

func (s *archiveService) Locate(ctx context.Context, id string) (string, error) {
	start, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return locatePath(start, func(pid string) (*model.Element, error) {
		el, err := s.repo.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		return el, nil
	})
}

// locatePath renders the full storage path of an element by walking its
// ancestor chain. lookup resolves a parent ID; returning (nil, nil) for a
// missing parent ends the walk.
func locatePath(start *model.Element, lookup func(id string) (*model.Element, error)) (string, error) {
	var parts []string
	seen := func(prefix string) bool {
		for _, p := range parts {
			if strings.HasPrefix(p, prefix) {
				return true
			}
		}
		return false
	}

	visited := map[string]bool{}
	current := start
	for current != nil && !visited[current.ID] {
		visited[current.ID] = true

		// The deepest shelf/rack on the chain wins; only boxes carry shelves.
		if current.Shelf != "" && current.Type == model.TypeBox && !seen("Shelf") {
			parts = append(parts, "Shelf "+current.Shelf)
		}
		if current.Rack != "" && !seen("Rack") {
			parts = append(parts, "Rack "+current.Rack)
		}
		if current.IsContainer() {
			parts = append(parts, fmt.Sprintf("%s '%s'", model.TypeLabel(current.Type), current.Name))
		}

		if current.ParentID == "" {
			break
		}
		next, err := lookup(current.ParentID)
		if err != nil {
			return "", err
		}
		if next == nil {
			break
		}
		current = next
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	path := strings.Join(parts, " / ")

	// A loose document falls back to its own shelf/rack.
	if path == "" && start.Type == model.TypeDocument {
		var own []string
		if start.Shelf != "" {
			own = append(own, "Shelf "+start.Shelf)
		}
		if start.Rack != "" {
			own = append(own, "Rack "+start.Rack)
		}
		path = strings.Join(own, " / ")
	}
	if path == "" {
		path = "No location"
	}
	return path, nil
}

// validate checks an element input against the container and category rules.
// id is empty on create; on update it anchors the cycle check.
func (s *archiveService) validate(ctx context.Context, id string, in *ElementInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrNameRequired
	}
	if !model.ValidType(in.Type) {
		return fmt.Errorf("%w: %q", ErrInvalidType, in.Type)
	}
	if in.Rack != "" && !isDigits(in.Rack) {
		return ErrInvalidRack
	}
	for _, code := range model.SplitCategories(in.Category) {
		if _, ok := model.CategoryDescription(code); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, code)
		}
	}

	if in.ParentID == "" {
		return nil
	}
	if in.ParentID == id {
		return ErrCycle
	}

	parent, err := s.repo.FindByID(ctx, in.ParentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrParentNotFound
		}
		return err
	}

	allowed := false
	for _, t := range model.ContainerTypes(in.Type) {
		if parent.Type == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s cannot go into %s", ErrInvalidParent, in.Type, parent.Type)
	}

	if id != "" {
		cyclic, err := s.wouldCycle(ctx, id, in.ParentID)
		if err != nil {
			return err
		}
		if cyclic {
			return ErrCycle
		}
	}
	return nil
}

// wouldCycle reports whether element id appears on the ancestor chain of the
// prospective parent.
func (s *archiveService) wouldCycle(ctx context.Context, id, parentID string) (bool, error) {
	visited := map[string]bool{}
	current := parentID
	for current != "" && !visited[current] {
		if current == id {
			return true, nil
		}
		visited[current] = true

		el, err := s.repo.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		current = el.ParentID
	}
	return false, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
