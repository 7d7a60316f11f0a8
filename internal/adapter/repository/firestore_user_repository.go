package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

// userIndex is stored under user_emails and user_usernames to reserve a
// value for one user.
type userIndex struct {
	UserID string `firestore:"userId"`
}

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) emailRef(email string) *firestore.DocumentRef {
	return r.client.Collection(userEmailsCollection).Doc(indexKey(email))
}

func (r *firestoreUserRepository) usernameRef(username string) *firestore.DocumentRef {
	return r.client.Collection(userUsernamesCollection).Doc(indexKey(username))
}

// reserve fails with a conflict if ref already belongs to another user.
func reserve(tx *firestore.Transaction, ref *firestore.DocumentRef, userID, message string) error {
	doc, err := tx.Get(ref)
	if err != nil && !isNotFound(err) {
		return errors.Internal("Failed to check user uniqueness", err)
	}
	if err == nil && doc.Exists() {
		var idx userIndex
		if err := doc.DataTo(&idx); err != nil {
			return errors.Internal("Failed to parse user index", err)
		}
		if idx.UserID != userID {
			return errors.Conflict(message)
		}
	}
	return nil
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = r.client.Collection(usersCollection).NewDoc().ID
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	userRef := r.client.Collection(usersCollection).Doc(user.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := reserve(tx, r.emailRef(user.Email), user.ID, "Email already in use"); err != nil {
			return err
		}
		if err := reserve(tx, r.usernameRef(user.Username), user.ID, "Username already taken"); err != nil {
			return err
		}

		if err := tx.Set(r.emailRef(user.Email), userIndex{UserID: user.ID}); err != nil {
			return err
		}
		if err := tx.Set(r.usernameRef(user.Username), userIndex{UserID: user.ID}); err != nil {
			return err
		}
		return tx.Create(userRef, user)
	})

	return errors.Wrap(err, "Failed to create user")
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	doc, err := r.emailRef(email).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var idx userIndex
	if err := doc.DataTo(&idx); err != nil {
		return nil, errors.Internal("Failed to parse user index", err)
	}

	return r.GetByID(ctx, idx.UserID)
}

func (r *firestoreUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	docs, err := getAll(ctx, r.client, usersCollection, ids)
	if err != nil {
		return nil, errors.Internal("Failed to get users", err)
	}

	users := make(map[string]*entity.User, len(docs))
	for _, doc := range docs {
		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return nil, errors.Internal("Failed to parse user data", err)
		}
		users[doc.Ref.ID] = &user
	}

	return users, nil
}

func (r *firestoreUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	return r.query(ctx, r.client.Collection(usersCollection).OrderBy("createdAt", firestore.Desc))
}

func (r *firestoreUserRepository) ListByType(ctx context.Context, userType string) ([]*entity.User, error) {
	return r.query(ctx, r.client.Collection(usersCollection).
		Where("userType", "==", userType).
		OrderBy("createdAt", firestore.Desc))
}

func (r *firestoreUserRepository) query(ctx context.Context, query firestore.Query) ([]*entity.User, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	users := make([]*entity.User, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate users", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return nil, errors.Internal("Failed to parse user data", err)
		}
		users = append(users, &user)
	}

	return users, nil
}

// Update moves the email and username reservations when either changes.
func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	userRef := r.client.Collection(usersCollection).Doc(user.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(userRef)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("User", err)
			}
			return errors.Internal("Failed to get user", err)
		}

		var current entity.User
		if err := doc.DataTo(&current); err != nil {
			return errors.Internal("Failed to parse user data", err)
		}

		emailChanged := indexKey(current.Email) != indexKey(user.Email)
		usernameChanged := indexKey(current.Username) != indexKey(user.Username)

		if emailChanged {
			if err := reserve(tx, r.emailRef(user.Email), user.ID, "Email already in use"); err != nil {
				return err
			}
		}
		if usernameChanged {
			if err := reserve(tx, r.usernameRef(user.Username), user.ID, "Username already taken"); err != nil {
				return err
			}
		}

		if emailChanged {
			if err := tx.Delete(r.emailRef(current.Email)); err != nil {
				return err
			}
			if err := tx.Set(r.emailRef(user.Email), userIndex{UserID: user.ID}); err != nil {
				return err
			}
		}
		if usernameChanged {
			if err := tx.Delete(r.usernameRef(current.Username)); err != nil {
				return err
			}
			if err := tx.Set(r.usernameRef(user.Username), userIndex{UserID: user.ID}); err != nil {
				return err
			}
		}
		return tx.Set(userRef, user)
	})

	return errors.Wrap(err, "Failed to update user")
}

func (r *firestoreUserRepository) Delete(ctx context.Context, id string) error {
	userRef := r.client.Collection(usersCollection).Doc(id)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(userRef)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("User", err)
			}
			return errors.Internal("Failed to get user", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return errors.Internal("Failed to parse user data", err)
		}

		if err := tx.Delete(r.emailRef(user.Email)); err != nil {
			return err
		}
		if err := tx.Delete(r.usernameRef(user.Username)); err != nil {
			return err
		}
		return tx.Delete(userRef)
	})

	return errors.Wrap(err, "Failed to delete user")
}
