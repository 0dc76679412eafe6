// Package grpcserver adapts the order service to gRPC.
package grpcserver

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"lob/api/pb"
	"lob/domain/book"
	"lob/service"
)

type Server struct {
	pb.UnimplementedOrderServiceServer
	svc *service.OrderService
	log *zap.Logger
}

func New(svc *service.OrderService, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

// -------------------- Commands --------------------

func (s *Server) PlaceOrder(
	ctx context.Context,
	req *pb.PlaceOrderRequest,
) (*pb.PlaceOrderResponse, error) {
	if req.Qty <= 0 {
		return nil, status.Error(codes.InvalidArgument, "qty must be positive")
	}

	trades, seq, err := s.svc.PlaceOrder(
		toType(req.Type),
		req.OrderId,
		toSide(req.Side),
		req.Price,
		req.Qty,
	)
	if err != nil {
		// Invalid fill means the engine state can no longer be
		// trusted for this order; surface it loudly.
		s.log.Error("place order failed",
			zap.Uint64("order_id", req.OrderId), zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}

	s.log.Debug("place order",
		zap.Uint64("order_id", req.OrderId),
		zap.Stringer("side", toSide(req.Side)),
		zap.Int64("price", req.Price),
		zap.Int64("qty", req.Qty),
		zap.Uint64("seq", seq),
		zap.Int("trades", len(trades)),
	)

	return &pb.PlaceOrderResponse{
		Seq:    seq,
		Trades: fromTrades(trades),
	}, nil
}

func (s *Server) CancelOrder(
	ctx context.Context,
	req *pb.CancelOrderRequest,
) (*pb.CancelOrderResponse, error) {
	seq := s.svc.CancelOrder(req.OrderId)

	s.log.Debug("cancel order",
		zap.Uint64("order_id", req.OrderId), zap.Uint64("seq", seq))

	return &pb.CancelOrderResponse{Seq: seq}, nil
}

func (s *Server) ModifyOrder(
	ctx context.Context,
	req *pb.ModifyOrderRequest,
) (*pb.ModifyOrderResponse, error) {
	if req.Qty <= 0 {
		return nil, status.Error(codes.InvalidArgument, "qty must be positive")
	}

	trades, seq, err := s.svc.ModifyOrder(
		req.OrderId,
		toSide(req.Side),
		req.Price,
		req.Qty,
	)
	if err != nil {
		s.log.Error("modify order failed",
			zap.Uint64("order_id", req.OrderId), zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &pb.ModifyOrderResponse{
		Seq:    seq,
		Trades: fromTrades(trades),
	}, nil
}

// -------------------- Queries --------------------

func (s *Server) GetDepth(
	ctx context.Context,
	req *pb.GetDepthRequest,
) (*pb.GetDepthResponse, error) {
	lb := s.svc.Depth()

	resp := &pb.GetDepthResponse{
		Bids: make([]*pb.DepthLevel, 0, len(lb.Bids)),
		Asks: make([]*pb.DepthLevel, 0, len(lb.Asks)),
	}
	for _, l := range lb.Bids {
		resp.Bids = append(resp.Bids, &pb.DepthLevel{Price: l.Price, Qty: l.Qty})
	}
	for _, l := range lb.Asks {
		resp.Asks = append(resp.Asks, &pb.DepthLevel{Price: l.Price, Qty: l.Qty})
	}
	return resp, nil
}

func (s *Server) GetSize(
	ctx context.Context,
	req *pb.GetSizeRequest,
) (*pb.GetSizeResponse, error) {
	return &pb.GetSizeResponse{Size: int64(s.svc.Size())}, nil
}

// -------------------- Converters --------------------

func toSide(s pb.Side) book.Side {
	if s == pb.Side_SELL {
		return book.Sell
	}
	return book.Buy
}

func toType(t pb.OrderType) book.OrderType {
	if t == pb.OrderType_FILL_AND_KILL {
		return book.FillAndKill
	}
	return book.GoodTillCancel
}

func fromTrades(trades book.Trades) []*pb.Trade {
	out := make([]*pb.Trade, 0, len(trades))
	for _, t := range trades {
		out = append(out, &pb.Trade{
			Bid: &pb.TradeLeg{OrderId: t.Bid.OrderID, Price: t.Bid.Price, Qty: t.Bid.Qty},
			Ask: &pb.TradeLeg{OrderId: t.Ask.OrderID, Price: t.Ask.Price, Qty: t.Ask.Qty},
		})
	}
	return out
}
