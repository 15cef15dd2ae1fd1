// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import "context"

type populationKey struct{}

// withPopulation pins the population for handlers mounted on fixed legacy paths.
func withPopulation(ctx context.Context, population Population) context.Context {
	return context.WithValue(ctx, populationKey{}, population)
}

func populationFromContext(ctx context.Context) (Population, bool) {
	population, ok := ctx.Value(populationKey{}).(Population)
	return population, ok
}
