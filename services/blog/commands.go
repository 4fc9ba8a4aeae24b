package blog

import (
	"context"
	"fmt"
	"sort"

	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/services/blog/render"
)

func (s *service) listBlogs(c context.Context, limit int) ([]Blog, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all blogs")

	blogs, err := s.blogStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	// newest first
	sort.Slice(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})

	if limit > 0 && limit < len(blogs) {
		blogs = blogs[:limit]
	}

	return blogs, nil
}

func (s *service) getBlog(c context.Context, blogUID string) (Blog, error) {
	s.logger.Log(c, blogUID, mylog.SeverityInfo, "Fetch details of blog %s", blogUID)

	blog, found, err := s.blogStore.Get(c, blogUID)
	if err != nil {
		return Blog{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Blog{}, myerrors.NewNotFoundError(fmt.Errorf("blog with uid %s not found", blogUID))
	}

	return blog, nil
}

// renderBlog resolves the post's content into display blocks, with image
// directives pointing below the given hostname.
func (s *service) renderBlog(c context.Context, blogUID string, hostname string) (Blog, []render.Block, error) {
	blog, err := s.getBlog(c, blogUID)
	if err != nil {
		return Blog{}, nil, err
	}

	blocks := render.Document(blog.Content, hostname+ImageBasePath)

	return blog, blocks, nil
}

func (s *service) createBlog(c context.Context, blog Blog) (Blog, error) {
	blog.UID = s.uuider.Create()
	blog.CreatedAt = s.nower.Now()
	blog.LastModified = nil

	s.logger.Log(c, blog.UID, mylog.SeverityInfo, "Creating new blog %s (%s)", blog.UID, blog.Title)

	err := s.blogStore.Put(c, blog.UID, blog)
	if err != nil {
		return Blog{}, myerrors.NewInternalError(err)
	}

	return blog, nil
}

func (s *service) updateBlog(c context.Context, blogUID string, updated Blog) (Blog, error) {
	s.logger.Log(c, blogUID, mylog.SeverityInfo, "Updating blog %s", blogUID)

	var blog Blog
	err := s.blogStore.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := s.blogStore.Get(c, blogUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("blog with uid %s not found", blogUID))
		}

		now := s.nower.Now()
		blog = updated
		blog.UID = existing.UID
		blog.CreatedAt = existing.CreatedAt
		blog.LastModified = &now

		return s.blogStore.Put(c, blogUID, blog)
	})
	if err != nil {
		return Blog{}, err
	}

	return blog, nil
}

func (s *service) deleteBlog(c context.Context, blogUID string) error {
	s.logger.Log(c, blogUID, mylog.SeverityInfo, "Deleting blog %s", blogUID)

	err := s.blogStore.Delete(c, blogUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

func (s *service) storeImage(c context.Context, name string, contentType string, data []byte) (BlogImage, error) {
	// prefix with a fresh uid so re-uploads of the same filename never clash
	image := BlogImage{
		Name:        fmt.Sprintf("%s-%s", s.uuider.Create(), name),
		ContentType: contentType,
		Data:        data,
	}

	s.logger.Log(c, image.Name, mylog.SeverityInfo, "Storing blog image %s (%d bytes)", image.Name, len(data))

	err := s.imageStore.Put(c, image.Name, image)
	if err != nil {
		return BlogImage{}, myerrors.NewInternalError(err)
	}

	return image, nil
}

func (s *service) getImage(c context.Context, name string) (BlogImage, error) {
	image, found, err := s.imageStore.Get(c, name)
	if err != nil {
		return BlogImage{}, myerrors.NewInternalError(err)
	}
	if !found {
		return BlogImage{}, myerrors.NewNotFoundError(fmt.Errorf("image %s not found", name))
	}

	return image, nil
}
