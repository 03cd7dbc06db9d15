package service

import (
	"course_market_backend/internal/model"
)

// DashboardService 教师端销售看板
type DashboardService struct {
	PurchaseRepo PurchaseStore
}

func NewDashboardService(purchaseRepo PurchaseStore) *DashboardService {
	return &DashboardService{PurchaseRepo: purchaseRepo}
}

func (s *DashboardService) GetOverview(teacherID string) (*model.DashboardOverview, error) {
	sales, err := s.PurchaseRepo.SalesByTeacher(teacherID)
	if err != nil {
		return nil, err
	}

	overview := &model.DashboardOverview{Courses: sales}
	for _, item := range sales {
		overview.TotalRevenue += item.Revenue
		overview.TotalSales += item.Sales
	}
	return overview, nil
}
