package services_test

import (
	"testing"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type ProductServiceTestSuite struct {
	storeSuite
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (s *ProductServiceTestSuite) TestCreateNormalisesName() {
	p := s.product("  Basmati   RICE ", "300", "250", 4)
	s.Equal("basmati rice", p.Name)

	_, err := s.svc.Product.CreateProduct(s.ctx, dto.CreateProductRequest{Name: "basmati rice"}, testUserID)
	s.ErrorIs(err, apperrors.ErrDuplicateProduct)
}

func (s *ProductServiceTestSuite) TestCreateValidation() {
	_, err := s.svc.Product.CreateProduct(s.ctx, dto.CreateProductRequest{Name: "   "}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Product.CreateProduct(s.ctx, dto.CreateProductRequest{Name: "x", Price: dec("-1")}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Product.CreateProduct(s.ctx, dto.CreateProductRequest{Name: "x", StockQuantity: -2}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Product.CreateProduct(s.ctx, dto.CreateProductRequest{Name: "x", Price: dec("9.999")}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ProductServiceTestSuite) TestListProductsPages() {
	s.product("b", "1", "1", 1)
	s.product("a", "1", "1", 1)
	s.product("c", "1", "1", 1)

	all, err := s.svc.Product.ListProducts(s.ctx, dto.ListProductsParams{})
	s.Require().NoError(err)
	s.Len(all, 3)

	page, err := s.svc.Product.ListProducts(s.ctx, dto.ListProductsParams{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Len(page, 1)
}

func (s *ProductServiceTestSuite) TestCreateKeepsCategoryReference() {
	p, err := s.svc.Product.CreateProduct(s.ctx, dto.CreateProductRequest{Name: "Soap", CategoryID: " toiletries "}, testUserID)
	s.Require().NoError(err)
	s.Equal("toiletries", p.CategoryID)

	listed, err := s.svc.Product.ListProducts(s.ctx, dto.ListProductsParams{})
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("toiletries", listed[0].CategoryID)
}
