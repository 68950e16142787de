package apidocs

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

const bearerAuth = "bearerAuth"

func ref(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}

func arrayOf(items *openapi3.SchemaRef) *openapi3.SchemaRef {
	schema := openapi3.NewArraySchema()
	schema.Items = items
	return schema.NewRef()
}

func jsonBody(schema *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schema),
	}
}

func response(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	res := openapi3.NewResponse().WithDescription(description)
	if schema != nil {
		res = res.WithJSONSchemaRef(schema)
	}
	return &openapi3.ResponseRef{Value: res}
}

func operation(id string, summary string, secured bool, responses map[int]*openapi3.ResponseRef) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	for status, res := range responses {
		op.AddResponse(status, res.Value)
	}
	if secured {
		op.Security = openapi3.NewSecurityRequirements().With(openapi3.NewSecurityRequirement().Authenticate(bearerAuth))
		op.AddResponse(http.StatusUnauthorized, response("Unauthorized", ref("ErrorMessage")).Value)
	}
	return op
}

func schemas() openapi3.Schemas {
	attribute := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewIntegerSchema()).
		WithProperty("name", openapi3.NewStringSchema())

	ids := openapi3.NewArraySchema().WithItems(openapi3.NewIntegerSchema())

	return openapi3.Schemas{
		"ErrorMessage": openapi3.NewObjectSchema().
			WithProperty("message", openapi3.NewStringSchema()).NewRef(),
		"FieldErrors": openapi3.NewObjectSchema().
			WithAdditionalProperties(openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).NewRef(),
		"AttributeInput": openapi3.NewObjectSchema().
			WithProperty("name", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(50)).
			WithRequired([]string{"name"}).NewRef(),
		"Attribute":     attribute.NewRef(),
		"AttributeList": openapi3.NewArraySchema().WithItems(attribute).NewRef(),
		"RecipeInput": openapi3.NewObjectSchema().
			WithProperty("title", openapi3.NewStringSchema().WithMaxLength(255)).
			WithProperty("time_minutes", openapi3.NewIntegerSchema()).
			WithProperty("price", openapi3.NewStringSchema().WithPattern(`^-?\d{1,3}(\.\d{1,2})?$`)).
			WithProperty("link", openapi3.NewStringSchema().WithMaxLength(255)).
			WithProperty("tags", ids).
			WithProperty("ingredients", ids).
			WithRequired([]string{"title", "time_minutes", "price"}).NewRef(),
		"RecipeSummary": openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewIntegerSchema()).
			WithProperty("title", openapi3.NewStringSchema()).
			WithProperty("time_minutes", openapi3.NewIntegerSchema()).
			WithProperty("price", openapi3.NewStringSchema()).
			WithProperty("link", openapi3.NewStringSchema()).
			WithProperty("tags", ids).
			WithProperty("ingredients", ids).NewRef(),
		"RecipeDetail": openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewIntegerSchema()).
			WithProperty("title", openapi3.NewStringSchema()).
			WithProperty("time_minutes", openapi3.NewIntegerSchema()).
			WithProperty("price", openapi3.NewStringSchema()).
			WithProperty("link", openapi3.NewStringSchema()).
			WithProperty("image", openapi3.NewStringSchema().WithNullable()).
			WithProperty("tags", openapi3.NewArraySchema().WithItems(attribute)).
			WithProperty("ingredients", openapi3.NewArraySchema().WithItems(attribute)).NewRef(),
		"RecipeImage": openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewIntegerSchema()).
			WithProperty("image", openapi3.NewStringSchema()).NewRef(),
		"UserCreateInput": openapi3.NewObjectSchema().
			WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
			WithProperty("password", openapi3.NewStringSchema().WithMinLength(5)).
			WithProperty("name", openapi3.NewStringSchema()).
			WithRequired([]string{"email", "password"}).NewRef(),
		"UserUpdateInput": openapi3.NewObjectSchema().
			WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
			WithProperty("password", openapi3.NewStringSchema().WithMinLength(5)).
			WithProperty("name", openapi3.NewStringSchema()).NewRef(),
		"LoginInput": openapi3.NewObjectSchema().
			WithProperty("email", openapi3.NewStringSchema()).
			WithProperty("password", openapi3.NewStringSchema()).
			WithRequired([]string{"email", "password"}).NewRef(),
		"LoginToken": openapi3.NewObjectSchema().
			WithProperty("token", openapi3.NewStringSchema()).
			WithProperty("expires", openapi3.NewInt64Schema()).NewRef(),
		"UserInfo": openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewIntegerSchema()).
			WithProperty("email", openapi3.NewStringSchema()).
			WithProperty("name", openapi3.NewStringSchema()).
			WithProperty("is_staff", openapi3.NewBoolSchema()).
			WithProperty("is_superuser", openapi3.NewBoolSchema()).NewRef(),
	}
}

func idParam() *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewIntegerSchema()),
	}
}

// Spec 描述全部对外接口
func Spec() *openapi3.T {
	badRequest := response("Validation failed", ref("FieldErrors"))
	notFound := response("Not found", ref("ErrorMessage"))

	attributePath := func(kind string) *openapi3.PathItem {
		list := operation(kind+"List", "List "+kind+"s owned by the caller", true, map[int]*openapi3.ResponseRef{
			http.StatusOK: response("OK", ref("AttributeList")),
		})
		create := operation(kind+"Create", "Create a "+kind, true, map[int]*openapi3.ResponseRef{
			http.StatusCreated:    response("Created", ref("Attribute")),
			http.StatusBadRequest: badRequest,
		})
		create.RequestBody = jsonBody(ref("AttributeInput"))
		return &openapi3.PathItem{Get: list, Post: create}
	}

	recipeList := operation("RecipeList", "List recipes owned by the caller", true, map[int]*openapi3.ResponseRef{
		http.StatusOK: response("OK", arrayOf(ref("RecipeSummary"))),
	})
	recipeCreate := operation("RecipeCreate", "Create a recipe", true, map[int]*openapi3.ResponseRef{
		http.StatusCreated:    response("Created", ref("RecipeSummary")),
		http.StatusBadRequest: badRequest,
	})
	recipeCreate.RequestBody = jsonBody(ref("RecipeInput"))

	recipeGet := operation("RecipeInfoGet", "Get a recipe with nested tags and ingredients", true, map[int]*openapi3.ResponseRef{
		http.StatusOK:       response("OK", ref("RecipeDetail")),
		http.StatusNotFound: notFound,
	})
	recipeUpdate := operation("RecipeUpdate", "Replace a recipe", true, map[int]*openapi3.ResponseRef{
		http.StatusOK:         response("OK", ref("RecipeSummary")),
		http.StatusBadRequest: badRequest,
		http.StatusNotFound:   notFound,
	})
	recipeUpdate.RequestBody = jsonBody(ref("RecipeInput"))
	recipePatch := operation("RecipePartialUpdate", "Update some fields of a recipe", true, map[int]*openapi3.ResponseRef{
		http.StatusOK:         response("OK", ref("RecipeSummary")),
		http.StatusBadRequest: badRequest,
		http.StatusNotFound:   notFound,
	})
	recipePatch.RequestBody = jsonBody(ref("RecipeInput"))
	recipeDelete := operation("RecipeDelete", "Delete a recipe", true, map[int]*openapi3.ResponseRef{
		http.StatusNoContent: response("Deleted", nil),
		http.StatusNotFound:  notFound,
	})

	uploadImage := operation("RecipeUploadImage", "Upload the recipe image", true, map[int]*openapi3.ResponseRef{
		http.StatusOK:         response("OK", ref("RecipeImage")),
		http.StatusBadRequest: badRequest,
		http.StatusNotFound:   notFound,
	})
	uploadImage.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithContent(openapi3.NewContentWithFormDataSchema(
			openapi3.NewObjectSchema().
				WithProperty("image", openapi3.NewStringSchema().WithFormat("binary")).
				WithRequired([]string{"image"}),
		)),
	}

	userCreate := operation("UserCreate", "Register a user", false, map[int]*openapi3.ResponseRef{
		http.StatusCreated:    response("Created", ref("UserInfo")),
		http.StatusBadRequest: badRequest,
	})
	userCreate.RequestBody = jsonBody(ref("UserCreateInput"))
	userToken := operation("UserToken", "Issue a bearer token", false, map[int]*openapi3.ResponseRef{
		http.StatusOK:           response("OK", ref("LoginToken")),
		http.StatusBadRequest:   badRequest,
		http.StatusUnauthorized: response("Invalid credentials", ref("ErrorMessage")),
	})
	userToken.RequestBody = jsonBody(ref("LoginInput"))
	userMe := operation("UserInfoGetSelf", "Get the caller", true, map[int]*openapi3.ResponseRef{
		http.StatusOK: response("OK", ref("UserInfo")),
	})
	userMeUpdate := operation("UserInfoUpdateSelf", "Update the caller", true, map[int]*openapi3.ResponseRef{
		http.StatusOK:         response("OK", ref("UserInfo")),
		http.StatusBadRequest: badRequest,
	})
	userMeUpdate.RequestBody = jsonBody(ref("UserUpdateInput"))
	userMeDelete := operation("UserDeleteSelf", "Delete the caller and everything they own", true, map[int]*openapi3.ResponseRef{
		http.StatusNoContent: response("Deleted", nil),
	})
	userPromote := operation("UserPromote", "Grant staff and superuser to a user", true, map[int]*openapi3.ResponseRef{
		http.StatusOK:        response("OK", ref("UserInfo")),
		http.StatusForbidden: response("Forbidden", ref("ErrorMessage")),
		http.StatusNotFound:  notFound,
	})

	withID := func(item *openapi3.PathItem) *openapi3.PathItem {
		item.Parameters = openapi3.Parameters{idParam()}
		return item
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "Recipe API",
			Version: "1.0.0",
		},
		Components: &openapi3.Components{
			Schemas: schemas(),
			SecuritySchemes: openapi3.SecuritySchemes{
				bearerAuth: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/users/", &openapi3.PathItem{Post: userCreate}),
			openapi3.WithPath("/users/token/", &openapi3.PathItem{Post: userToken}),
			openapi3.WithPath("/users/me/", &openapi3.PathItem{Get: userMe, Patch: userMeUpdate, Delete: userMeDelete}),
			openapi3.WithPath("/users/{id}/promote/", withID(&openapi3.PathItem{Post: userPromote})),
			openapi3.WithPath("/tags/", attributePath("Tag")),
			openapi3.WithPath("/ingredients/", attributePath("Ingredient")),
			openapi3.WithPath("/recipes/", &openapi3.PathItem{Get: recipeList, Post: recipeCreate}),
			openapi3.WithPath("/recipes/{id}/", withID(&openapi3.PathItem{Get: recipeGet, Put: recipeUpdate, Patch: recipePatch, Delete: recipeDelete})),
			openapi3.WithPath("/recipes/{id}/upload-image/", withID(&openapi3.PathItem{Post: uploadImage})),
		),
	}
}
