package store

import (
	"context"
	"fmt"
	"time"

	"Backend-GnaasCMS/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	studentCollection    = "students"
	attendanceCollection = "attendances"
	actionLogCollection  = "action_logs"
	userCollection       = "users"
)

// NewMongo builds the Mongo-backed store set on top of a connected database.
func NewMongo(db *mongo.Database) *Store {
	return &Store{
		Students:   &mongoStudentStore{col: db.Collection(studentCollection)},
		Attendance: &mongoAttendanceStore{col: db.Collection(attendanceCollection)},
		Actions:    &mongoActionLogStore{col: db.Collection(actionLogCollection)},
		Users:      &mongoUserStore{col: db.Collection(userCollection)},
	}
}

type mongoStudentStore struct {
	col *mongo.Collection
}

func (s *mongoStudentStore) Insert(ctx context.Context, st *models.Student) error {
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}
	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, st)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func (s *mongoStudentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var st models.Student
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &st, nil
}

func (s *mongoStudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var st models.Student
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find student by email: %w", err)
	}
	return &st, nil
}

func (s *mongoStudentStore) FindByCode(ctx context.Context, code string) (*models.Student, error) {
	var st models.Student
	err := s.col.FindOne(ctx, bson.M{"code": code}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find student by code: %w", err)
	}
	return &st, nil
}

func (s *mongoStudentStore) FindByEmailOrCode(ctx context.Context, email, code string) (*models.Student, error) {
	var or []bson.M
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if code != "" {
		or = append(or, bson.M{"code": code})
	}
	if len(or) == 0 {
		return nil, models.ErrNotFound
	}
	var st models.Student
	err := s.col.FindOne(ctx, bson.M{"$or": or}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find student by email or code: %w", err)
	}
	return &st, nil
}

func (s *mongoStudentStore) List(ctx context.Context, f StudentFilter) ([]models.Student, error) {
	filter := bson.M{}
	if f.Hall != "" {
		filter["hall"] = f.Hall
	}
	if f.Level != "" {
		filter["level"] = f.Level
	}
	if f.Gender != "" {
		filter["gender"] = f.Gender
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	var out []models.Student
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	return out, nil
}

func (s *mongoStudentStore) ListByLevel(ctx context.Context, level string) ([]models.Student, error) {
	return s.List(ctx, StudentFilter{Level: level})
}

func (s *mongoStudentStore) Count(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return n, nil
}

func (s *mongoStudentStore) CountCodePrefix(ctx context.Context, prefix string) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"code": bson.M{"$regex": "^" + prefix}})
	if err != nil {
		return 0, fmt.Errorf("count student codes: %w", err)
	}
	return n, nil
}

func (s *mongoStudentStore) Update(ctx context.Context, id primitive.ObjectID, u StudentUpdate) error {
	set := bson.M{
		"fullName":               u.FullName,
		"gender":                 u.Gender,
		"level":                  u.Level,
		"programOfStudy":         u.ProgramOfStudy,
		"programDurationYears":   u.ProgramDurationYears,
		"expectedCompletionYear": u.ExpectedCompletionYear,
		"hall":                   u.Hall,
		"role":                   u.Role,
		"dateOfAdmission":        u.DateOfAdmission,
		"dateOfBirth":            u.DateOfBirth,
		"residence":              u.Residence,
		"guardianName":           u.GuardianName,
		"guardianContact":        u.GuardianContact,
		"localChurchName":        u.LocalChurchName,
		"localChurchLocation":    u.LocalChurchLocation,
		"district":               u.District,
		"phone":                  u.Phone,
		"email":                  u.Email,
		"profileImageUrl":        u.ProfileImageURL,
		"updatedAt":              time.Now(),
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoStudentStore) UpdateLevel(ctx context.Context, id primitive.ObjectID, level string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"level": level, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("update student level: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoStudentStore) BulkUpdateLevel(ctx context.Context, ids []primitive.ObjectID, level string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.col.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"level": level, "updatedAt": time.Now()}})
	if err != nil {
		return 0, fmt.Errorf("bulk update level: %w", err)
	}
	return res.ModifiedCount, nil
}

func (s *mongoStudentStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoStudentStore) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete students: %w", err)
	}
	return res.DeletedCount, nil
}

type mongoAttendanceStore struct {
	col *mongo.Collection
}

func (s *mongoAttendanceStore) Insert(ctx context.Context, a *models.Attendance) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateMark
	}
	if err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

func (s *mongoAttendanceStore) InsertMany(ctx context.Context, rows []models.Attendance) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(rows))
	for i := range rows {
		if rows[i].ID.IsZero() {
			rows[i].ID = primitive.NewObjectID()
		}
		rows[i].CreatedAt = now
		rows[i].UpdatedAt = now
		docs = append(docs, rows[i])
	}
	_, err := s.col.InsertMany(ctx, docs)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateMark
	}
	if err != nil {
		return fmt.Errorf("insert attendance rows: %w", err)
	}
	return nil
}

func attendanceQuery(f AttendanceFilter) bson.M {
	filter := bson.M{}
	if f.Date != "" {
		filter["date"] = f.Date
	}
	if f.DateFrom != "" || f.DateTo != "" {
		rng := bson.M{}
		if f.DateFrom != "" {
			rng["$gte"] = f.DateFrom
		}
		if f.DateTo != "" {
			rng["$lte"] = f.DateTo
		}
		filter["date"] = rng
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.IsPresent != nil {
		filter["isPresent"] = *f.IsPresent
	}
	if !f.StudentID.IsZero() {
		filter["studentId"] = f.StudentID
	}
	return filter
}

func (s *mongoAttendanceStore) Find(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error) {
	cursor, err := s.col.Find(ctx, attendanceQuery(f), options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	var out []models.Attendance
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return out, nil
}

func (s *mongoAttendanceStore) FindOne(ctx context.Context, f AttendanceFilter) (*models.Attendance, error) {
	var a models.Attendance
	err := s.col.FindOne(ctx, attendanceQuery(f)).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find attendance row: %w", err)
	}
	return &a, nil
}

func (s *mongoAttendanceStore) CloseSlot(ctx context.Context, date string, typ models.AttendanceType) (int64, error) {
	res, err := s.col.UpdateMany(ctx,
		bson.M{"date": date, "type": typ},
		bson.M{"$set": bson.M{"status": models.AttendanceClosed, "updatedAt": time.Now()}})
	if err != nil {
		return 0, fmt.Errorf("close attendance slot: %w", err)
	}
	return res.ModifiedCount, nil
}

func (s *mongoAttendanceStore) DeleteMemberMarks(ctx context.Context, date string, studentIDs []primitive.ObjectID) (int64, error) {
	if len(studentIDs) == 0 {
		return 0, nil
	}
	res, err := s.col.DeleteMany(ctx, bson.M{
		"date":      date,
		"type":      models.AttendanceMember,
		"studentId": bson.M{"$in": studentIDs},
	})
	if err != nil {
		return 0, fmt.Errorf("delete attendance marks: %w", err)
	}
	return res.DeletedCount, nil
}

type mongoActionLogStore struct {
	col *mongo.Collection
}

func (s *mongoActionLogStore) Insert(ctx context.Context, a *models.ActionLog) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = time.Now()
	_, err := s.col.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("insert action log: %w", err)
	}
	return nil
}

func (s *mongoActionLogStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ActionLog, error) {
	var a models.ActionLog
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrActionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find action log: %w", err)
	}
	return &a, nil
}

func (s *mongoActionLogStore) FindRecent(ctx context.Context, limit int64) ([]models.ActionLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list action logs: %w", err)
	}
	var out []models.ActionLog
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode action logs: %w", err)
	}
	return out, nil
}

func (s *mongoActionLogStore) ClaimUndo(ctx context.Context, id primitive.ObjectID, typ models.ActionType) (*models.ActionLog, error) {
	// The conditional filter makes the claim a compare-and-set: out of N
	// concurrent undo requests exactly one sees the pre-claim document.
	var a models.ActionLog
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "actionType": typ, "undone": false},
		bson.M{"$set": bson.M{"undone": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("claim undo: %w", err)
	}
	a.Undone = true
	return &a, nil
}

type mongoUserStore struct {
	col *mongo.Collection
}

func (s *mongoUserStore) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *mongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *mongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (s *mongoUserStore) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var out []models.User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return out, nil
}

func (s *mongoUserStore) UpdateProfileImage(ctx context.Context, id primitive.ObjectID, url string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"profileImageUrl": url, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("update profile image: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"passwordHash": passwordHash, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
