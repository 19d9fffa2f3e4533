package mongodb

import (
	"bazaar/internal/domain/entity"
	"bazaar/internal/infra/persistence/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func userToModel(user *entity.User) *model.UserModel {
	return &model.UserModel{
		Name:                  user.Name,
		Email:                 user.Email,
		Password:              user.PasswordHash,
		Age:                   user.Age,
		City:                  user.City,
		Interests:             user.Interests,
		AllowsReceivingOffers: user.AllowsReceivingOffers,
		Role:                  string(user.Role),
	}
}

func userToEntity(doc *model.UserModel) *entity.User {
	return &entity.User{
		ID:                    doc.ID.Hex(),
		Name:                  doc.Name,
		Email:                 doc.Email,
		PasswordHash:          doc.Password,
		Age:                   doc.Age,
		City:                  doc.City,
		Interests:             doc.Interests,
		AllowsReceivingOffers: doc.AllowsReceivingOffers,
		Role:                  entity.Role(doc.Role),
		CreatedAt:             doc.CreatedAt,
		UpdatedAt:             doc.UpdatedAt,
	}
}

func shopToModel(shop *entity.Shop) *model.ShopModel {
	return &model.ShopModel{
		Name:     shop.Name,
		Password: shop.PasswordHash,
		CIF:      shop.CIF,
		City:     shop.City,
		Email:    shop.Email,
		Phone:    shop.Phone,
		Activity: shop.Activity,
		WebShop:  webShopToModel(shop.WebShop),
	}
}

func shopToEntity(doc *model.ShopModel) *entity.Shop {
	return &entity.Shop{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		PasswordHash: doc.Password,
		CIF:          doc.CIF,
		City:         doc.City,
		Email:        doc.Email,
		Phone:        doc.Phone,
		Activity:     doc.Activity,
		WebShop:      webShopToEntity(doc.WebShop),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

// webShopToModel materializes the array fields so that store-side $push
// and $concatArrays updates always find real arrays.
func webShopToModel(webShop *entity.WebShop) *model.WebShopModel {
	if webShop == nil {
		return nil
	}

	doc := &model.WebShopModel{
		Title:      webShop.Title,
		Summary:    webShop.Summary,
		Texts:      webShop.Texts,
		Photos:     webShop.Photos,
		Scoring:    webShop.Scoring,
		NumRatings: webShop.NumRatings,
		Reviews:    make([]model.ReviewModel, 0, len(webShop.Reviews)),
		CreatedAt:  webShop.CreatedAt,
		UpdatedAt:  webShop.UpdatedAt,
	}
	if doc.Texts == nil {
		doc.Texts = []string{}
	}
	if doc.Photos == nil {
		doc.Photos = []string{}
	}
	for _, review := range webShop.Reviews {
		doc.Reviews = append(doc.Reviews, *reviewToModel(&review))
	}

	return doc
}

func webShopToEntity(doc *model.WebShopModel) *entity.WebShop {
	if doc == nil {
		return nil
	}

	webShop := &entity.WebShop{
		Title:      doc.Title,
		Summary:    doc.Summary,
		Texts:      doc.Texts,
		Photos:     doc.Photos,
		Scoring:    doc.Scoring,
		NumRatings: doc.NumRatings,
		Reviews:    make([]entity.Review, 0, len(doc.Reviews)),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
	if webShop.Texts == nil {
		webShop.Texts = []string{}
	}
	if webShop.Photos == nil {
		webShop.Photos = []string{}
	}
	for _, review := range doc.Reviews {
		webShop.Reviews = append(webShop.Reviews, entity.Review{
			ID:        review.ID.Hex(),
			Score:     review.Score,
			Text:      review.Text,
			CreatedAt: review.CreatedAt,
		})
	}

	return webShop
}

func reviewToModel(review *entity.Review) *model.ReviewModel {
	id, err := primitive.ObjectIDFromHex(review.ID)
	if err != nil {
		id = primitive.NewObjectID()
	}

	return &model.ReviewModel{
		ID:        id,
		Score:     review.Score,
		Text:      review.Text,
		CreatedAt: review.CreatedAt,
	}
}
