package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/services/catalogevents"
)

type productFilter struct {
	categoryUID    string
	subcategoryUID string
	featuredOnly   bool
	newOnly        bool
	limit          int
}

func (s *service) listProducts(c context.Context, filter productFilter) ([]Product, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch products (%+v)", filter)

	filters := []mystore.Filter{}
	if filter.categoryUID != "" {
		filters = append(filters, mystore.Filter{Field: "CategoryUID", Compare: "=", Value: filter.categoryUID})
	}
	if filter.subcategoryUID != "" {
		filters = append(filters, mystore.Filter{Field: "SubcategoryUID", Compare: "=", Value: filter.subcategoryUID})
	}
	if filter.featuredOnly {
		filters = append(filters, mystore.Filter{Field: "IsFeatured", Compare: "=", Value: true})
	}
	if filter.newOnly {
		filters = append(filters, mystore.Filter{Field: "IsNew", Compare: "=", Value: true})
	}

	products, err := s.productStore.Query(c, filters, "Name")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	if filter.limit > 0 && filter.limit < len(products) {
		products = products[:filter.limit]
	}

	return products, nil
}

func (s *service) getProduct(c context.Context, productUID string) (Product, error) {
	product, found, err := s.productStore.Get(c, productUID)
	if err != nil {
		return Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Product{}, myerrors.NewNotFoundError(fmt.Errorf("product with uid %s not found", productUID))
	}

	return product, nil
}

func (s *service) createProduct(c context.Context, product Product) (Product, error) {
	product.UID = s.uuider.Create()
	product.CreatedAt = s.nower.Now()

	s.logger.Log(c, product.UID, mylog.SeverityInfo, "Creating new product %s (%s)", product.UID, product.Name)

	err := s.productStore.RunInTransaction(c, func(c context.Context) error {
		err := s.productStore.Put(c, product.UID, product)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, catalogevents.TopicName, catalogevents.ProductCreated{
			ProductUID:  product.UID,
			ProductName: product.Name,
			CategoryUID: product.CategoryUID,
			Price:       product.Price,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Product{}, err
	}

	return product, nil
}

func (s *service) updateProduct(c context.Context, productUID string, updated Product) (Product, error) {
	s.logger.Log(c, productUID, mylog.SeverityInfo, "Updating product %s", productUID)

	var product Product
	err := s.productStore.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := s.productStore.Get(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("product with uid %s not found", productUID))
		}

		product = updated
		product.UID = existing.UID
		product.CreatedAt = existing.CreatedAt

		err = s.productStore.Put(c, productUID, product)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, catalogevents.TopicName, catalogevents.ProductUpdated{
			ProductUID:  product.UID,
			ProductName: product.Name,
			CategoryUID: product.CategoryUID,
			Price:       product.Price,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Product{}, err
	}

	return product, nil
}

func (s *service) deleteProduct(c context.Context, productUID string) error {
	s.logger.Log(c, productUID, mylog.SeverityInfo, "Deleting product %s", productUID)

	return s.productStore.RunInTransaction(c, func(c context.Context) error {
		err := s.productStore.Delete(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, catalogevents.TopicName, catalogevents.ProductDeleted{
			ProductUID: productUID,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}

func (s *service) listCategories(c context.Context) ([]Category, error) {
	categories, err := s.categoryStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

func (s *service) getCategory(c context.Context, categoryUID string) (Category, error) {
	category, found, err := s.categoryStore.Get(c, categoryUID)
	if err != nil {
		return Category{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Category{}, myerrors.NewNotFoundError(fmt.Errorf("category with uid %s not found", categoryUID))
	}

	return category, nil
}

func (s *service) createCategory(c context.Context, category Category) (Category, error) {
	category.UID = s.uuider.Create()
	category.Icon = category.Icon.Normalize()

	s.logger.Log(c, category.UID, mylog.SeverityInfo, "Creating new category %s (%s)", category.UID, category.Name)

	err := s.categoryStore.Put(c, category.UID, category)
	if err != nil {
		return Category{}, myerrors.NewInternalError(err)
	}

	return category, nil
}

func (s *service) updateCategory(c context.Context, categoryUID string, updated Category) (Category, error) {
	s.logger.Log(c, categoryUID, mylog.SeverityInfo, "Updating category %s", categoryUID)

	var category Category
	err := s.categoryStore.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := s.categoryStore.Get(c, categoryUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("category with uid %s not found", categoryUID))
		}

		category = updated
		category.UID = existing.UID
		category.Icon = category.Icon.Normalize()

		return s.categoryStore.Put(c, categoryUID, category)
	})
	if err != nil {
		return Category{}, err
	}

	return category, nil
}

func (s *service) deleteCategory(c context.Context, categoryUID string) error {
	s.logger.Log(c, categoryUID, mylog.SeverityInfo, "Deleting category %s", categoryUID)

	err := s.categoryStore.Delete(c, categoryUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

func (s *service) listSubcategories(c context.Context, categoryUID string) ([]Subcategory, error) {
	filters := []mystore.Filter{}
	if categoryUID != "" {
		filters = append(filters, mystore.Filter{Field: "CategoryUID", Compare: "=", Value: categoryUID})
	}

	subcategories, err := s.subcategoryStore.Query(c, filters, "Name")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	return subcategories, nil
}

func (s *service) createSubcategory(c context.Context, subcategory Subcategory) (Subcategory, error) {
	_, err := s.getCategory(c, subcategory.CategoryUID)
	if err != nil {
		return Subcategory{}, err
	}

	subcategory.UID = s.uuider.Create()

	s.logger.Log(c, subcategory.UID, mylog.SeverityInfo, "Creating new subcategory %s (%s)", subcategory.UID, subcategory.Name)

	err = s.subcategoryStore.Put(c, subcategory.UID, subcategory)
	if err != nil {
		return Subcategory{}, myerrors.NewInternalError(err)
	}

	return subcategory, nil
}

func (s *service) updateSubcategory(c context.Context, subcategoryUID string, updated Subcategory) (Subcategory, error) {
	s.logger.Log(c, subcategoryUID, mylog.SeverityInfo, "Updating subcategory %s", subcategoryUID)

	var subcategory Subcategory
	err := s.subcategoryStore.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := s.subcategoryStore.Get(c, subcategoryUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("subcategory with uid %s not found", subcategoryUID))
		}

		subcategory = updated
		subcategory.UID = existing.UID

		return s.subcategoryStore.Put(c, subcategoryUID, subcategory)
	})
	if err != nil {
		return Subcategory{}, err
	}

	return subcategory, nil
}

func (s *service) deleteSubcategory(c context.Context, subcategoryUID string) error {
	s.logger.Log(c, subcategoryUID, mylog.SeverityInfo, "Deleting subcategory %s", subcategoryUID)

	err := s.subcategoryStore.Delete(c, subcategoryUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}
