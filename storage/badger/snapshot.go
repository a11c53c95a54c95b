/*
 * Drop Emulator
 *
 * Copyright Dropmint Labs
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package badger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dropmint/drop-emulator/storage"
)

// State snapshots are implemented by committing the Badger database directory
// into a git repository living alongside it. Each named snapshot is a git
// branch plus a tag marking its starting commit.

var _ storage.SnapshotProvider = &Store{}

func getTag(r *git.Repository, tag string) *object.Tag {
	tags, err := r.TagObjects()
	if err != nil {
		return nil
	}
	var res *object.Tag = nil
	_ = tags.ForEach(func(t *object.Tag) error {
		if t.Name == tag {
			res = t
		}
		return nil
	})
	return res
}

func setTag(r *git.Repository, tag string, tagger *object.Signature) (bool, error) {
	if getTag(r, tag) != nil {
		return false, nil
	}
	h, err := r.Head()
	if err != nil {
		return false, err
	}
	_, err = r.CreateTag(tag, h.Hash(), &git.CreateTagOptions{
		Tagger:  tagger,
		Message: tag,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func defaultSignature(name, email string) *object.Signature {
	return &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Now(),
	}
}

// lockGit blocks external git commits against the database directory while
// Badger has it open. Errors are ignored, the lock is advisory.
func (s *Store) lockGit() {
	lockPath := fmt.Sprintf("%s/.git/index.lock", s.config.DBPath)
	_ = os.WriteFile(lockPath, []byte("droplock"), 0755)
}

func (s *Store) unlockGit() {
	lockPath := fmt.Sprintf("%s/.git/index.lock", s.config.DBPath)
	_ = os.Remove(lockPath)
}

// JumpToContext switches the database to the named snapshot, creating it if
// it does not exist yet.
func (s *Store) JumpToContext(context string) error {

	if !s.config.Snapshot {
		return fmt.Errorf("snapshot option is not enabled")
	}

	s.unlockGit()
	defer s.lockGit()
	err := s.db.Close()
	if err != nil {
		return err
	}

	err = s.newCommit(fmt.Sprintf("switch to snapshot %s", context))
	if err != nil {
		return errors.Wrap(err, "could not commit current state")
	}
	w, err := s.dbGitRepository.Worktree()
	if err != nil {
		return errors.Wrap(err, "could not open snapshot worktree")
	}
	branch := fmt.Sprintf("refs/heads/%s", context)
	b := plumbing.ReferenceName(branch)

	err = w.Checkout(&git.CheckoutOptions{Create: false, Force: true, Branch: b})

	if err != nil {
		// first jump to this name: create its branch and tag the
		// commit it starts from
		err := w.Checkout(&git.CheckoutOptions{Create: true, Force: true, Branch: b})
		if err != nil {
			return err
		}

		created, err := setTag(s.dbGitRepository, context, defaultSignature("Drop Emulator", "emulator@dropmint.dev"))
		if err != nil && !created {
			return err
		}
	} else {
		// the snapshot exists: continue on a throwaway branch reset to
		// the tagged starting commit, so the snapshot itself stays
		// untouched
		newBranch := strings.Replace(uuid.New().String(), "-", "", -1)

		err := w.Checkout(&git.CheckoutOptions{Create: true, Force: true, Branch: plumbing.NewBranchReferenceName(newBranch)})
		if err != nil {
			return err
		}

		tag := getTag(s.dbGitRepository, context)
		if tag != nil && !tag.Hash.IsZero() {
			commit, _ := tag.Commit()
			_ = w.Reset(&git.ResetOptions{
				Mode:   git.HardReset,
				Commit: commit.Hash,
			})
		}
	}

	s.db, err = badger.Open(s.config.BadgerOptions)
	if err != nil {
		return fmt.Errorf("could not open database: %w", err)
	}

	return nil
}

func (s *Store) newCommit(message string) error {
	s.unlockGit()
	defer s.lockGit()
	err := s.Sync()
	if err != nil {
		return err
	}

	w, err := s.dbGitRepository.Worktree()
	if err != nil {
		return err
	}

	// stage only the Badger database files, nothing else living in the
	// directory belongs to the snapshot
	err = filepath.Walk(s.config.DBPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		if info.Name() == "KEYREGISTRY" || info.Name() == "MANIFEST" || info.Name() == "LOCK" {
			_, adderr := w.Add(path[strings.LastIndex(path, "/")+1:])
			return adderr
		}

		if filepath.Ext(path) == ".vlog" || filepath.Ext(path) == ".sst" {
			_, adderr := w.Add(path[strings.LastIndex(path, "/")+1:])
			return adderr
		}
		return nil
	})

	if err != nil {
		return err
	}

	_, err = w.Commit(message, &git.CommitOptions{
		Author: defaultSignature("Drop Emulator", "emulator@dropmint.dev"),
	})

	if err != nil {
		return err
	}
	return nil
}

func (s *Store) openRepository(directory string) (*git.Repository, error) {
	dbgit, err := git.PlainOpen(directory)
	if err == nil {
		return dbgit, err
	}
	if err == git.ErrRepositoryNotExists {
		result, err := git.PlainInit(directory, false)
		if err == nil {
			return result, err
		}
		return nil, err
	}
	return nil, err
}

// setup prepares the snapshot repository, if snapshots are enabled.
func (s *Store) setup() error {

	if s.config.Snapshot {
		dbgit, err := s.openRepository(s.config.DBPath)
		s.dbGitRepository = dbgit
		if err != nil {
			return errors.Wrap(err, "could not open snapshot repository")
		}

		w, _ := dbgit.Worktree()
		r, _ := dbgit.Head()
		if r != nil {
			_ = w.Reset(&git.ResetOptions{
				Mode:   git.HardReset,
				Commit: r.Hash(),
			})
		}
		err = s.newCommit("session start")
		if err != nil {
			return err
		}
		s.lockGit()
	}

	return nil
}
