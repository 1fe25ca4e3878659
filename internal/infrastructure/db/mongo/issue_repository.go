package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cityworks/complaints-api/internal/core/domain"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

const issuesCollection = "issues"

// IssueRepository persists complaints in the issues collection.
type IssueRepository struct {
	coll *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{coll: db.Collection(issuesCollection)}
}

type commentDoc struct {
	Author string    `bson:"author"`
	Text   string    `bson:"text"`
	Date   time.Time `bson:"date"`
}

type issueDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Type        string             `bson:"type"`
	Location    string             `bson:"location"`
	Reporter    string             `bson:"reporter"`
	Date        time.Time          `bson:"date"`
	Status      string             `bson:"status"`
	AssignedTo  *string            `bson:"assignedTo"`
	Comments    []commentDoc       `bson:"comments"`
	PhotoURL    string             `bson:"photoUrl"`
}

func (d issueDoc) toDomain() *domain.Issue {
	comments := make([]domain.Comment, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = domain.Comment{Author: c.Author, Text: c.Text, Date: c.Date}
	}
	return &domain.Issue{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Type:        d.Type,
		Location:    d.Location,
		Reporter:    d.Reporter,
		Date:        d.Date,
		Status:      d.Status,
		AssignedTo:  d.AssignedTo,
		Comments:    comments,
		PhotoURL:    d.PhotoURL,
	}
}

// parseID converts the external hex identity into an ObjectID.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidIssueID
	}
	return oid, nil
}

func (r *IssueRepository) Create(ctx context.Context, issue *domain.Issue) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	comments := make([]commentDoc, len(issue.Comments))
	for i, c := range issue.Comments {
		comments[i] = commentDoc{Author: c.Author, Text: c.Text, Date: c.Date}
	}

	doc := issueDoc{
		Title:       issue.Title,
		Description: issue.Description,
		Type:        issue.Type,
		Location:    issue.Location,
		Reporter:    issue.Reporter,
		Date:        issue.Date,
		Status:      issue.Status,
		AssignedTo:  issue.AssignedTo,
		Comments:    comments,
		PhotoURL:    issue.PhotoURL,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert issue: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert issue: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *IssueRepository) FindByID(ctx context.Context, id string) (*domain.Issue, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc issueDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns issues sorted by date descending. An empty reporter means all
// issues; otherwise only that reporter's issues are returned.
func (r *IssueRepository) List(ctx context.Context, reporter string) ([]*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if reporter != "" {
		filter["reporter"] = reporter
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer cur.Close(ctx)

	issues := make([]*domain.Issue, 0)
	for cur.Next(ctx) {
		var doc issueDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode issue: %w", err)
		}
		issues = append(issues, doc.toDomain())
	}
	return issues, cur.Err()
}

func (r *IssueRepository) SetFields(ctx context.Context, id string, update ports.IssueFieldUpdate) error {
	if update.Empty() {
		return nil
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if update.SetAssignedTo {
		// A nil value writes an explicit null (unassigned).
		set["assignedTo"] = update.AssignedTo
	}
	if update.SetStatus {
		set["status"] = update.Status
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update issue: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

// AppendComment relies on $push so concurrent appends are serialized by the
// store and insertion order is preserved.
func (r *IssueRepository) AppendComment(ctx context.Context, id string, comment domain.Comment) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	push := bson.M{"$push": bson.M{"comments": commentDoc{
		Author: comment.Author,
		Text:   comment.Text,
		Date:   comment.Date,
	}}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, push)
	if err != nil {
		return fmt.Errorf("append comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing list queries.
func (r *IssueRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reporter", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
